package memo_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/timeboard/memo"
)

func TestTableizeI1O1(t *testing.T) {
	count := 0
	fn := memo.TableizeI1O1(func(i int) int {
		count++
		return i * 2
	}, memo.NewTrie[int](2))

	assert.Equal(t, 4, fn(2))
	assert.Equal(t, 4, fn(2)) // cached
	assert.Equal(t, 1, count)
}

func TestTableizeI2O1(t *testing.T) {
	count := 0
	fn := memo.TableizeI2O1(func(a, b int) int {
		count++
		return a + b
	}, memo.NewTrie[int](2))

	assert.Equal(t, 5, fn(2, 3))
	assert.Equal(t, 5, fn(2, 3))
	assert.Equal(t, 1, count)
	assert.Equal(t, 6, fn(2, 4), "different arguments compute freshly")
	assert.Equal(t, 2, count)
}

func TestTableizeI3O1(t *testing.T) {
	count := 0
	fn := memo.TableizeI3O1(func(a, b, c int) int {
		count++
		return a * b * c
	}, memo.NewTrie[int](2))

	assert.Equal(t, 24, fn(2, 3, 4))
	assert.Equal(t, 24, fn(2, 3, 4))
	assert.Equal(t, 1, count)
}

func TestTableize_RistrettoBackend(t *testing.T) {
	table, err := memo.NewRistrettoTable[int](128)
	require.NoError(t, err)
	defer table.Close()

	count := 0
	fn := memo.TableizeI2O1(func(a, b int) int {
		count++
		return a - b
	}, table)

	assert.Equal(t, 1, fn(3, 2))
	assert.Equal(t, 1, fn(3, 2))
	assert.Equal(t, 1, count) // 캐시 확인
}

type NonComparable struct {
	Field []int // slices are not comparable
}

func (n NonComparable) String() string {
	return fmt.Sprintf("NonComparable%v", n.Field)
}

func TestTableizeWithStringerFallback(t *testing.T) {
	count := 0
	fn := memo.TableizeI1O1(func(n NonComparable) int {
		count++
		return len(n.Field)
	}, memo.NewTrie[int](2))

	val := fn(NonComparable{Field: []int{1, 2, 3}})
	val2 := fn(NonComparable{Field: []int{1, 2, 3}})

	assert.Equal(t, 3, val)
	assert.Equal(t, 3, val2)
	assert.Equal(t, 1, count)
}

type TotallyInvalid struct {
	Field []int
}

func TestTableizeWithPanicIfNoComparableOrStringer(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic due to missing Stringer and non-comparable type")
		}
	}()
	fn := memo.TableizeI1O1(func(t TotallyInvalid) int {
		return len(t.Field)
	}, memo.NewTrie[int](2))

	_ = fn(TotallyInvalid{Field: []int{1}})
}
