package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type pair struct {
	A string
	B int
}

func Test_Pool_Intern_DedupesStructuralEquals(t *testing.T) {
	assert := assert.New(t)
	p := New[pair]()

	id1, new1 := p.Intern(pair{A: "x", B: 1})
	assert.True(new1)

	id2, new2 := p.Intern(pair{A: "x", B: 1})
	assert.False(new2, "structurally equal value must not be reinterned as new")
	assert.Equal(id1, id2)

	id3, new3 := p.Intern(pair{A: "y", B: 1})
	assert.True(new3)
	assert.NotEqual(id1, id3)
}

func Test_Pool_Intern_StableFirstSeenIDs(t *testing.T) {
	assert := assert.New(t)
	p := New[pair]()

	first, _ := p.Intern(pair{A: "a"})
	assert.Equal(0, first)
	second, _ := p.Intern(pair{A: "b"})
	assert.Equal(1, second)

	// re-interning an earlier value must not disturb later IDs.
	again, isNew := p.Intern(pair{A: "a"})
	assert.False(isNew)
	assert.Equal(0, again)

	third, _ := p.Intern(pair{A: "c"})
	assert.Equal(2, third)
}

func Test_Pool_IDs_PreserveInsertionOrder(t *testing.T) {
	assert := assert.New(t)
	p := New[pair]()

	p.Intern(pair{A: "a"})
	p.Intern(pair{A: "b"})
	p.Intern(pair{A: "a"}) // duplicate, shouldn't reorder
	p.Intern(pair{A: "c"})

	assert.Equal([]int{0, 1, 2}, p.IDs())
}

func Test_Pool_ValueOf(t *testing.T) {
	assert := assert.New(t)
	p := New[pair]()

	id, _ := p.Intern(pair{A: "z", B: 9})
	v, ok := p.ValueOf(id)
	assert.True(ok)
	assert.Equal(pair{A: "z", B: 9}, v)

	_, ok = p.ValueOf(999)
	assert.False(ok)
}
