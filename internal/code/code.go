package code

// Mnemonic is an instruction name of the target stack machine, without its
// type suffix.
type Mnemonic string

const (
	Mov       Mnemonic = "mov"
	Add       Mnemonic = "add"
	Sub       Mnemonic = "sub"
	Mul       Mnemonic = "mul"
	Div       Mnemonic = "div"
	Mod       Mnemonic = "mod"
	And       Mnemonic = "and"
	Or        Mnemonic = "or"
	IntToReal Mnemonic = "inttoreal"
	RealToInt Mnemonic = "realtoint"

	Jump Mnemonic = "jump"
	Je   Mnemonic = "je"
	Jne  Mnemonic = "jne"
	Jl   Mnemonic = "jl"
	Jle  Mnemonic = "jle"
	Jg   Mnemonic = "jg"
	Jge  Mnemonic = "jge"

	Push   Mnemonic = "push"
	Call   Mnemonic = "call"
	IncSP  Mnemonic = "incsp"
	Enter  Mnemonic = "enter"
	Leave  Mnemonic = "leave"
	Return Mnemonic = "return"

	Write Mnemonic = "write"
	Read  Mnemonic = "read"
	Exit  Mnemonic = "exit"
)

type Definition struct {
	Name     Mnemonic
	Operands int
	Typed    bool
}

var definitions = map[Mnemonic]*Definition{
	Mov:       {Mov, 2, true},
	Add:       {Add, 3, true},
	Sub:       {Sub, 3, true},
	Mul:       {Mul, 3, true},
	Div:       {Div, 3, true},
	Mod:       {Mod, 3, true},
	And:       {And, 3, true},
	Or:        {Or, 3, true},
	IntToReal: {IntToReal, 2, true},
	RealToInt: {RealToInt, 2, true},
	Jump:      {Jump, 1, true},
	Je:        {Je, 3, true},
	Jne:       {Jne, 3, true},
	Jl:        {Jl, 3, true},
	Jle:       {Jle, 3, true},
	Jg:        {Jg, 3, true},
	Jge:       {Jge, 3, true},
	Push:      {Push, 1, true},
	Call:      {Call, 1, true},
	IncSP:     {IncSP, 1, true},
	Enter:     {Enter, 1, true},
	Leave:     {Leave, 0, false},
	Return:    {Return, 0, false},
	Write:     {Write, 1, true},
	Read:      {Read, 1, true},
	Exit:      {Exit, 0, false},
}

// Lookup returns the definition of a known mnemonic. Unknown mnemonics are
// still emitted, just without an operand count check.
func Lookup(op Mnemonic) (*Definition, bool) {
	def, ok := definitions[op]
	return def, ok
}
