package cpu

const (
	MEMORY_SIZE = 1024 // Default number of memory cells.
)

// Machine is the architectural state of the stack machine.
type Machine struct {
	Memory []uint32 // Memory cells.
	Stack  Stack    // Operand stack.
	Pc     int      // Byte offset of the next instruction.
}

// NewMachine creates machine state with size memory cells, all set to initial.
func NewMachine(size int, initial uint32) (m *Machine) {
	m = &Machine{}
	m.Reset(size, initial)
	return
}

// Reset the machine state.
func (m *Machine) Reset(size int, initial uint32) {
	if len(m.Memory) != size {
		m.Memory = make([]uint32, size)
	}
	for n := range m.Memory {
		m.Memory[n] = initial
	}
	m.Stack.Reset()
	m.Pc = 0
}

// Execute applies a single decoded instruction to the machine state.
//
// An out-of-range memory access is reported as ErrMemoryRange after its
// fallback effect is applied: a read pushes 0, a write is dropped. All other
// errors leave the instruction partially applied.
func Execute(m *Machine, code Code) (err error) {
	switch code.Op {
	case OP_LOAD:
		err = push(m, code.Operand)
	case OP_READ:
		var addr uint32
		addr, err = pop(m)
		if err != nil {
			return
		}
		value, fault := readMemory(m, uint64(addr)+uint64(code.Operand))
		err = push(m, value)
		if err == nil {
			err = fault
		}
	case OP_WRITE:
		var addr, value uint32
		value, err = pop(m)
		if err != nil {
			return
		}
		addr, err = pop(m)
		if err != nil {
			return
		}
		err = writeMemory(m, uint64(addr), value)
	case OP_GT:
		var val1, val2, addr uint32
		val1, err = pop(m)
		if err != nil {
			return
		}
		val2, err = pop(m)
		if err != nil {
			return
		}
		addr, err = pop(m)
		if err != nil {
			return
		}
		var result uint32
		if val2 > val1 {
			result = 1
		}
		err = writeMemory(m, uint64(addr)+uint64(code.Operand), result)
	default:
		err = ErrOpcodeUnknown(code.Op)
	}

	return
}

func push(m *Machine, value uint32) (err error) {
	if !m.Stack.Push(value) {
		err = ErrStackFull
	}
	return
}

func pop(m *Machine) (value uint32, err error) {
	value, ok := m.Stack.Pop()
	if !ok {
		err = ErrStackEmpty
	}
	return
}

func readMemory(m *Machine, addr uint64) (value uint32, err error) {
	if addr >= uint64(len(m.Memory)) {
		err = ErrAddress(addr)
		return
	}
	value = m.Memory[addr]
	return
}

func writeMemory(m *Machine, addr uint64, value uint32) (err error) {
	if addr >= uint64(len(m.Memory)) {
		err = ErrAddress(addr)
		return
	}
	m.Memory[addr] = value
	return
}
