package kfmt

import "io"

const digits = "0123456789abcdef"

var (
	errMissingArg   = []byte("(MISSING)")
	errWrongArgType = []byte("%!(WRONGTYPE)")
	errNoVerb       = []byte("%!(NOVERB)")
	errExtraArg     = []byte("%!(EXTRA)")
	trueValue       = []byte("true")
	falseValue      = []byte("false")

	// numBuf assembles numbers back to front. It is shared package-level
	// storage so that number formatting never allocates.
	numBuf [32]byte

	// byteBuf passes single characters to the sink without triggering an
	// allocation for a one-byte slice.
	byteBuf = []byte{0}

	// earlyPrintBuffer retains Printf output produced before a console
	// sink has been registered.
	earlyPrintBuffer ringBuffer

	// outputSink is the io.Writer where Printf sends its output. While it
	// is nil, output is redirected to the earlyPrintBuffer.
	outputSink io.Writer
)

// SetOutputSink sets the target for calls to Printf to w and replays any
// output that accumulated in the early print buffer before w was available.
func SetOutputSink(w io.Writer) {
	outputSink = w
	if w != nil {
		io.Copy(w, &earlyPrintBuffer)
	}
}

// Printf provides a minimal Printf implementation that can be safely used
// before the Go runtime has been properly initialized. This implementation
// does not allocate any memory.
//
// The following subset of formatting verbs is supported:
//
// Strings:
//		%s the uninterpreted bytes of the string or byte slice
//
// Integers:
//              %o base 8
//              %d base 10
//              %x base 16, with lower-case letters for a-f
//
// Booleans:
//              %t "true" or "false"
//
// An optional decimal number preceding the verb specifies a minimum width.
// Strings and base-10 integers narrower than the width are left-padded with
// spaces; base-8 and base-16 integers are left-padded with zeroes.
//
// All built-in string and integer types are supported, but nothing that
// requires itables or reflection (io.Stringer, %p pointers) is: resolving
// those makes the compiler emit calls into the allocator, which must not
// happen before the memory manager is up.
//
// Until a console sink is registered via SetOutputSink, the output of Printf
// accumulates in a ring buffer and is replayed once a sink appears.
func Printf(format string, args ...interface{}) {
	Fprintf(outputSink, format, args...)
}

// Fprintf behaves exactly like Printf but it writes the formatted output to
// the specified io.Writer. A nil writer stands for the early print buffer.
func Fprintf(w io.Writer, format string, args ...interface{}) {
	var argIndex int

	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '%' {
			emitByte(w, ch)
			continue
		}

		// Scan the optional width, then the verb.
		var (
			width int
			verb  byte
		)
		for i++; i < len(format); i++ {
			if c := format[i]; c >= '0' && c <= '9' {
				width = width*10 + int(c-'0')
				continue
			}
			verb = format[i]
			break
		}

		switch verb {
		case '%':
			emitByte(w, '%')
		case 'd', 'o', 'x', 's', 't':
			if argIndex >= len(args) {
				emit(w, errMissingArg)
				break
			}
			arg := args[argIndex]
			argIndex++

			switch verb {
			case 'o':
				fmtInt(w, arg, 8, width)
			case 'd':
				fmtInt(w, arg, 10, width)
			case 'x':
				fmtInt(w, arg, 16, width)
			case 's':
				fmtString(w, arg, width)
			case 't':
				fmtBool(w, arg)
			}
		default:
			// Hit a non-verb character or the end of the format
			// string while looking for the verb.
			emit(w, errNoVerb)
		}
	}

	// Flag unused args
	for ; argIndex < len(args); argIndex++ {
		emit(w, errExtraArg)
	}
}

// emit writes p to the supplied writer, falling back to the early print
// buffer when no writer is available.
func emit(w io.Writer, p []byte) {
	if w == nil {
		w = &earlyPrintBuffer
	}

	w.Write(p)
}

// emitByte writes a single character through the shared one-byte buffer.
func emitByte(w io.Writer, ch byte) {
	byteBuf[0] = ch
	emit(w, byteBuf)
}

// fmtBool prints a formatted version of boolean value v.
func fmtBool(w io.Writer, v interface{}) {
	switch t := v.(type) {
	case bool:
		if t {
			emit(w, trueValue)
		} else {
			emit(w, falseValue)
		}
	default:
		emit(w, errWrongArgType)
	}
}

// fmtString prints a formatted version of string or []byte value v,
// left-padding with spaces up to the requested width.
func fmtString(w io.Writer, v interface{}, width int) {
	switch t := v.(type) {
	case string:
		pad(w, ' ', width-len(t))
		// Converting the string to a byte slice would allocate, so
		// write it out one byte at a time.
		for i := 0; i < len(t); i++ {
			emitByte(w, t[i])
		}
	case []byte:
		pad(w, ' ', width-len(t))
		emit(w, t)
	default:
		emit(w, errWrongArgType)
	}
}

// fmtInt prints out a formatted version of v in the requested base,
// left-padding up to the requested width. All built-in signed and unsigned
// integer types are supported.
func fmtInt(w io.Writer, v interface{}, base, width int) {
	var (
		uval uint64
		neg  bool
	)

	switch t := v.(type) {
	case uint8:
		uval = uint64(t)
	case uint16:
		uval = uint64(t)
	case uint32:
		uval = uint64(t)
	case uint64:
		uval = t
	case uint:
		uval = uint64(t)
	case uintptr:
		uval = uint64(t)
	case int8:
		uval, neg = unsign(int64(t))
	case int16:
		uval, neg = unsign(int64(t))
	case int32:
		uval, neg = unsign(int64(t))
	case int64:
		uval, neg = unsign(t)
	case int:
		uval, neg = unsign(int64(t))
	default:
		emit(w, errWrongArgType)
		return
	}

	padCh := byte(' ')
	if base == 8 || base == 16 {
		padCh = '0'
	}

	index := len(numBuf)
	for {
		index--
		numBuf[index] = digits[uval%uint64(base)]
		if uval /= uint64(base); uval == 0 {
			break
		}
	}

	if neg {
		index--
		numBuf[index] = '-'
	}

	pad(w, padCh, width-(len(numBuf)-index))
	emit(w, numBuf[index:])
}

// unsign splits a signed value into its magnitude and sign.
func unsign(v int64) (uint64, bool) {
	if v < 0 {
		return uint64(-v), true
	}

	return uint64(v), false
}

// pad writes count bytes with value ch; count <= 0 writes nothing.
func pad(w io.Writer, ch byte, count int) {
	for i := 0; i < count; i++ {
		emitByte(w, ch)
	}
}
