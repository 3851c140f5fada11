package graph

// Declaration records where and as what a name was declared
type Declaration struct {
	Kind     Kind     `yaml:"kind"`
	Position Position `yaml:"position"`
}

// NamingConflict groups every declaration of a name that was declared more than once
type NamingConflict struct {
	Name         string         `yaml:"name"`
	Declarations []*Declaration `yaml:"declarations"`
}

// IsFileClassCollision reports the sanctioned File + Class collision that ClassFile fusion resolves
func (c *NamingConflict) IsFileClassCollision() bool {
	if len(c.Declarations) != 2 {
		return false
	}
	a, b := c.Declarations[0].Kind, c.Declarations[1].Kind
	return (a == KindFile && b == KindClass) || (a == KindClass && b == KindFile)
}

// Kinds returns distinct declared kinds in declaration order
func (c *NamingConflict) Kinds() []Kind {
	var result []Kind
	seen := map[Kind]bool{}
	for _, declaration := range c.Declarations {
		if seen[declaration.Kind] {
			continue
		}
		seen[declaration.Kind] = true
		result = append(result, declaration.Kind)
	}
	return result
}
