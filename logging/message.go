package logging

// TextPosition represents a positional range in source text. Lines and
// columns both start at 1; the end column is exclusive.
type TextPosition struct {
	StartLn  int
	StartCol int
	EndLn    int
	EndCol   int
}

// LogContext stores the shared context for all messages logged while
// processing a single source file
type LogContext struct {
	// FilePath is the path to the file being compiled
	FilePath string
}

// LogMessage is the interface for all messages the logger can process
type LogMessage interface {
	display()
	isError() bool
}

// CompileMessage is a positioned message about user source code: either a
// compilation error or a warning
type CompileMessage struct {
	Message string

	// Kind must be one of the enumerated message kinds (prefixed `LMK`)
	Kind int

	// Position is the text range the message refers to; it may be nil for
	// messages that have no meaningful source location
	Position *TextPosition

	Context *LogContext
	IsError bool
}

func (cm *CompileMessage) isError() bool {
	return cm.IsError
}

// ConfigError is an error related to project or compiler configuration (as
// opposed to user source code)
type ConfigError struct {
	Kind    string
	Message string
}

func (ce *ConfigError) isError() bool {
	return true
}

// Enumeration of compile message kinds
const (
	LMKToken  = iota // malformed token
	LMKSyntax        // malformed s-expression form
	LMKName          // unbound symbols, unknown functions
	LMKTyping        // operand and return type mismatches
	LMKArg           // operator and call arity
	LMKLiteral       // unparsable number literals
	LMKUsage         // recognized but unsupported constructs
)
