package automata

// MazeCarver is the ruleset that carves terrain corridors: cells are
// born surrounded by 2-3 live neighbors, survive at 7-8, and decay
// through 4 states otherwise. A few steps of this over a random seeding
// leave behind wall ridges with corridor floors between them.
var MazeCarver = Ruleset{
	Name:      "maze",
	Born:      0x3 << 2,
	Survive:   0x3 << 7,
	States:    4,
	Decay:     true,
	Neighbors: Moore,
}

// Instantiators are run, in order, over the settled maze grid. A cell
// that lands exactly on a ruleset's States value after its step becomes
// a placement marker carrying that ruleset's name.
var Instantiators = []Ruleset{
	{
		Name:      "cool tree",
		Born:      0x3f,
		Survive:   0xff,
		States:    20,
		Neighbors: MooreAbove,
	},
	{
		Name:      "ash pinus",
		Born:      0xff,
		Survive:   0xff,
		States:    21,
		Neighbors: MooreAbove,
	},
}
