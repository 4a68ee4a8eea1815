package ptr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type pointerSuite struct {
	suite.Suite
}

func (s *pointerSuite) TestPointer() {
	now := time.Now()
	p1 := String(`abc123`)
	p2 := Int(123)
	p3 := Time(now)

	s.Equal(*p1, `abc123`)
	s.Equal(*p2, int(123))
	s.Equal(*p3, now)
}

func (s *pointerSuite) TestDistinct() {
	a, b := String("x"), String("x")
	s.NotSame(a, b)
}

func TestPointerSuite(t *testing.T) {
	suite.Run(t, new(pointerSuite))
}
