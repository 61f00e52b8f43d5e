package entigo_test

import (
	"bytes"
	"fmt"

	"github.com/hupe1980/entigo"
	"github.com/hupe1980/entigo/store"
)

func Example() {
	type Position struct {
		X, Y int
	}
	type Label struct {
		Text string
	}

	pool := entigo.New()
	if err := entigo.Register(pool, store.NewDense[Position]()); err != nil {
		panic(err)
	}
	if err := entigo.Register(pool, store.NewSparse[Label]()); err != nil {
		panic(err)
	}

	player := pool.Spawn()
	entigo.Set(pool, player, Position{X: 3, Y: 4})
	entigo.Set(pool, player, Label{Text: "player"})

	monster := pool.Spawn()
	entigo.Set(pool, monster, Position{X: 10, Y: 10})

	if pos, ok := entigo.Get[Position](pool, player); ok {
		fmt.Printf("player at (%d,%d)\n", pos.X, pos.Y)
	}

	pool.RemoveEntity(monster)
	for id, pos := range entigo.All[Position](pool) {
		fmt.Printf("entity %d at (%d,%d)\n", id, pos.X, pos.Y)
	}

	pool.CleanupRemoved()
	fmt.Println("pending removals:", pool.Removed())

	// Output:
	// player at (3,4)
	// entity 1 at (3,4)
	// pending removals: 0
}

func ExamplePool_WriteSnapshot() {
	type Score struct {
		Points int
	}

	src := entigo.New()
	if err := entigo.Register(src, store.NewSparse[Score]()); err != nil {
		panic(err)
	}
	e := src.Spawn()
	entigo.Set(src, e, Score{Points: 7})

	var buf bytes.Buffer
	if err := src.WriteSnapshot(&buf); err != nil {
		panic(err)
	}

	dst := entigo.New()
	if err := entigo.Register(dst, store.NewSparse[Score]()); err != nil {
		panic(err)
	}
	if err := dst.ReadSnapshot(&buf); err != nil {
		panic(err)
	}

	score, _ := entigo.Get[Score](dst, e)
	fmt.Println("restored points:", score.Points)

	// Output:
	// restored points: 7
}
