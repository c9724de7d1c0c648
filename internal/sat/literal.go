package sat

import "fmt"

// Literal represents a literal, which either represent a boolean variable or
// its negation. The sign is packed into the low bit of the variable's doubled
// index, so the complement of a literal is a single XOR.
type Literal int32

// LitNull never denotes a valid literal. The branching heuristics return it
// when no variable is left to decide, and analysis uses it as a placeholder
// for the UIP slot of the learnt clause.
const LitNull Literal = -1

// PositiveLiteral returns the literal representing varID's positive polarity.
func PositiveLiteral(varID int) Literal {
	return Literal(varID * 2)
}

// NegativeLiteral returns the literal representing varID's negative polarity.
func NegativeLiteral(varID int) Literal {
	return PositiveLiteral(varID).Opposite()
}

// VarID returns the ID of the literal's variable.
func (l Literal) VarID() int {
	return int(l) / 2
}

// IsPositive returns true if and only if the literal represent the value of
// its boolean variable (i.e. not its negation)
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the opposite literal.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID())
	} else {
		return fmt.Sprintf("!%d", l.VarID())
	}
}
