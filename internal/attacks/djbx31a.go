package attacks

import (
	"github.com/lth/hashflood/internal/hashmodel"
)

// "Aa" and "BB" both hash to 2112: 'A'*31+'a' == 'B'*31+'B'.
var djbx31aRoots = []string{"Aa", "BB"}

type DJBX31ACollider struct{}

func NewDJBX31ACollider() *DJBX31ACollider {
	return &DJBX31ACollider{}
}

func (c *DJBX31ACollider) Generate(count int) ([]string, error) {
	return expand(djbx31aRoots, count)
}

func (c *DJBX31ACollider) Model() hashmodel.Model {
	return hashmodel.DJBX31A{}
}

func (c *DJBX31ACollider) Roots() []string {
	return append([]string(nil), djbx31aRoots...)
}
