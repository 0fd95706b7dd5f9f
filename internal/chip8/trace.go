package chip8

import "github.com/retroenv/retrogolib/log"

// Step describes one executed instruction for tracing.
type Step struct {
	PC       uint16 // address of the executed instruction
	Opcode   uint16 // raw instruction word
	Mnemonic string // canonical assembly form
	NextPC   uint16 // program counter after execution
}

// Tracer receives a structured record for every executed instruction.
// The engine uses a no-op tracer by default so it has no I/O side
// effects.
type Tracer interface {
	Trace(step Step)
}

type nopTracer struct{}

func (nopTracer) Trace(Step) {}

// NewLogTracer returns a tracer that logs every step at debug level.
func NewLogTracer(logger *log.Logger) Tracer {
	return &logTracer{logger: logger}
}

type logTracer struct {
	logger *log.Logger
}

func (t *logTracer) Trace(step Step) {
	t.logger.Debug("Step",
		log.Hex("pc", step.PC),
		log.Hex("opcode", step.Opcode),
		log.String("instr", step.Mnemonic),
		log.Hex("next_pc", step.NextPC),
	)
}
