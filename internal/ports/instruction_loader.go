package ports

import "github.com/drueck/reboot/internal/domain"

// InstructionLoader loads an instruction program from a source (e.g., filesystem).
type InstructionLoader interface {
	LoadProgram(path string) (domain.Program, error)
}
