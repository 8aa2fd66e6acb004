package bedrock_test

import (
	"fmt"

	"github.com/TheBitDrifter/bedrock"
)

type Position struct{ X, Y float64 }
type Velocity struct{ X, Y float64 }

func Example_basic() {
	w := bedrock.NewWorld()
	id := w.Spawn(Position{X: 1, Y: 1}, Velocity{X: 2, Y: 3})

	pos, _ := bedrock.Get[Position](w, id)
	fmt.Printf("%+v\n", *pos)

	// Output:
	// {X:1 Y:1}
}

func Example_queries() {
	w := bedrock.NewWorld()
	posAcc := bedrock.NewAccessor[Position](w)
	velAcc := bedrock.NewAccessor[Velocity](w)

	w.Spawn(Position{X: 1, Y: 1}, Velocity{X: 1, Y: 1})
	w.Spawn(Position{X: 5, Y: 5}, Velocity{X: 1, Y: 1})
	w.Spawn(Position{X: 0, Y: 0}) // no Velocity, not matched below

	cursor := w.NewCursor(w.Query().And(posAcc, velAcc))
	for cursor.Next() {
		pos := posAcc.GetFromCursor(cursor)
		vel := velAcc.GetFromCursor(cursor)
		pos.X += vel.X
		pos.Y += vel.Y
	}

	fmt.Println(cursor.TotalMatched())

	// Output:
	// 2
}
