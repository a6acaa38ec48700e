package sax

import (
	"math"

	"github.com/mcvoid/domjson/numlex"
	"github.com/mcvoid/domjson/rawstack"
	"github.com/mcvoid/domjson/value"
)

// parserState names every point the state machine can be suspended at
// across a WriteSome boundary: one dominant state plus small side
// counters.
type parserState int

const (
	sDocStart parserState = iota
	sValue                // shared entry point: dispatch on the next non-ws byte
	sDocEnd

	sObjectStart
	sObjectColon
	sObjectComma
	sObjectKeyAfterComma

	sArrayStart
	sArrayComma
	sArrayValueAfterComma

	sInString
	sInStringEscape
	sStringUnicodeHex
	sStringAfterHighSurrogate
	sStringHighSurrogateEscapeU
	sStringLowSurrogateHex

	sInNumberSign
	sInNumberZero
	sInNumberInt
	sInNumberFracStart
	sInNumberFrac
	sInNumberExpSign
	sInNumberExpStart
	sInNumberExp

	sInLiteral

	sCommentSlash
	sCommentLine
	sCommentBlock
	sCommentBlockStar
)

// frameKind distinguishes the two container shapes a frame on the raw
// stack's nontrivial region can represent.
type frameKind uint8

const (
	frameArray frameKind = iota
	frameObject
)

type frame struct {
	kind  frameKind
	count int
}

// stringTarget distinguishes an in-progress string payload from an
// in-progress object key, since both share the same scanning states.
type stringTarget uint8

const (
	targetString stringTarget = iota
	targetKey
)

// Parser is a resumable SAX-style JSON tokenizer: WriteSome may be called
// any number of times with successive chunks of one document, and the
// parser preserves every bit of in-progress state (partial tokens, open
// container depth, pending surrogate halves) between calls.
type Parser struct {
	opts    Options
	handler Handler
	stack   *rawstack.RawStack

	state    parserState
	pos      int64
	done     bool
	failed   error
	maxDepth int

	maxArrayLen  int
	maxObjectLen int
	maxStringLen int
	maxKeyLen    int

	// string scanning
	target      stringTarget
	strTotal    int
	hexVal      int
	hexLeft     int
	pendingHigh rune
	utf8Need    int
	utf8Have    int

	// number scanning
	num *numlex.Accumulator

	// literal matching ("true"/"false"/"null")
	litWant string
	litGot  int
	litKind byte // 't', 'f', or 'n'

	// comments
	pendingState parserState
}

// NewParser returns a Parser ready to parse one document with opts. Reuse
// across documents via Reset rather than allocating a new Parser, so the
// raw stack's backing arrays survive.
func NewParser(h Handler, opts Options) *Parser {
	p := &Parser{
		handler:      h,
		opts:         opts,
		stack:        rawstack.New(),
		maxDepth:     DefaultMaxDepth,
		maxArrayLen:  value.MaxArrayLen,
		maxObjectLen: value.MaxObjectLen,
		maxStringLen: value.MaxStringLen,
		maxKeyLen:    value.MaxStringLen,
		num:          numlex.New(),
	}
	return p
}

// SetMaxDepth overrides DefaultMaxDepth for subsequent parses.
func (p *Parser) SetMaxDepth(n int) { p.maxDepth = n }

// MaxDepth reports the configured nesting limit.
func (p *Parser) MaxDepth() int { return p.maxDepth }

// SetMaxArrayLen overrides the default element-count ceiling (matching
// value.MaxArrayLen) for arrays parsed by this Parser.
func (p *Parser) SetMaxArrayLen(n int) { p.maxArrayLen = n }

// SetMaxObjectLen overrides the default pair-count ceiling (matching
// value.MaxObjectLen) for objects parsed by this Parser.
func (p *Parser) SetMaxObjectLen(n int) { p.maxObjectLen = n }

// SetMaxStringLen overrides the default byte-length ceiling (matching
// value.MaxStringLen) for string payloads parsed by this Parser.
func (p *Parser) SetMaxStringLen(n int) { p.maxStringLen = n }

// SetMaxKeyLen overrides the default byte-length ceiling for object keys
// parsed by this Parser.
func (p *Parser) SetMaxKeyLen(n int) { p.maxKeyLen = n }

// Depth reports the current container nesting depth.
func (p *Parser) Depth() int { return p.stack.NontrivialLen() }

// IsComplete reports whether a full document has been parsed and no
// trailing non-whitespace bytes have been seen.
func (p *Parser) IsComplete() bool { return p.done }

// Reset clears all parser state to begin a new document, reusing the raw
// stack's backing storage.
func (p *Parser) Reset() {
	p.stack.Clear()
	p.state = sDocStart
	p.pos = 0
	p.done = false
	p.failed = nil
	p.num.Reset()
	p.litWant = ""
	p.litGot = 0
	p.pendingHigh = 0
	p.utf8Need = 0
	p.utf8Have = 0
}

func (p *Parser) errAt(code Code) error {
	e := &ParseError{Code: code, Offset: p.pos}
	p.failed = e
	return e
}

// WriteSome feeds data to the parser. more indicates whether additional
// bytes may follow this chunk: when more is false, end-of-input is
// signaled after data is consumed, so an in-progress token or open
// container reports CodeIncomplete instead of waiting for more bytes that
// will never arrive. consumed is always len(data) on success; on error it
// is the offset within data where the parser stopped.
func (p *Parser) WriteSome(more bool, data []byte) (consumed int, err error) {
	if p.failed != nil {
		return 0, p.failed
	}

	i := 0
	for i < len(data) {
		b := data[i]
		reprocess, err := p.step(b)
		if err != nil {
			return i, err
		}
		if !reprocess {
			i++
			p.pos++
		}
	}
	consumed = i

	if err := p.flushPartial(); err != nil {
		return consumed, err
	}

	if !more {
		if err := p.atEOF(); err != nil {
			return consumed, err
		}
	}
	return consumed, nil
}

// flushPartial delivers whatever bytes have accumulated for an
// in-progress string, key, or comment token to OnStringPart/OnKeyPart/
// OnCommentPart once a WriteSome call runs out of input without
// finishing that token. This is the chunked-delivery half of the
// Handler contract: OnKey/OnString/OnComment still fire once, with only
// the final chunk, when the token actually closes.
func (p *Parser) flushPartial() error {
	switch p.state {
	case sInString, sInStringEscape, sStringUnicodeHex,
		sStringAfterHighSurrogate, sStringHighSurrogateEscapeU, sStringLowSurrogateHex:
		if len(p.stack.Bytes()) == 0 {
			return nil
		}
		chunk := p.stack.TakeBytes()
		if p.target == targetKey {
			return p.handler.OnKeyPart(chunk, p.strTotal)
		}
		return p.handler.OnStringPart(chunk, p.strTotal)
	case sCommentLine, sCommentBlock, sCommentBlockStar:
		if len(p.stack.Bytes()) == 0 {
			return nil
		}
		return p.handler.OnCommentPart(p.stack.TakeBytes())
	}
	return nil
}

// Finish feeds a final chunk (which may be empty) and requires the
// document be complete afterward.
func (p *Parser) Finish(data []byte) error {
	_, err := p.WriteSome(false, data)
	return err
}

func (p *Parser) atEOF() error {
	switch p.state {
	case sDocEnd:
		return nil
	case sInNumberZero, sInNumberInt:
		return p.finishNumber(true)
	case sInNumberFrac:
		if p.num.Text()[len(p.num.Text())-1] == '.' {
			return p.errAt(CodeExpectedFraction)
		}
		return p.finishNumber(true)
	case sInNumberExp:
		return p.finishNumber(true)
	default:
		return p.errAt(CodeIncomplete)
	}
}

func isWS(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// tryComment starts a comment if AllowComments is set and b is '/',
// resuming at resumeAt once the comment closes. Callers at every
// whitespace-accepting state use this to accept comments in the same
// positions whitespace is allowed.
func (p *Parser) tryComment(b byte, resumeAt parserState) (handled bool, err error) {
	if b != '/' {
		return false, nil
	}
	if !p.opts.AllowComments {
		return false, p.errAt(CodeIllegalChar)
	}
	p.pendingState = resumeAt
	p.state = sCommentSlash
	return true, nil
}

// step advances the state machine by one byte. reprocess is true when b
// belongs to the grammar position the machine just transitioned into
// (e.g. a digit that terminates a number token) and must be dispatched
// again under the new state, without consuming an extra input byte.
func (p *Parser) step(b byte) (reprocess bool, err error) {
	switch p.state {
	case sDocStart:
		if isWS(b) {
			return false, nil
		}
		if handled, err := p.tryComment(b, sDocStart); handled || err != nil {
			return false, err
		}
		if err := p.handler.OnDocumentBegin(); err != nil {
			return false, err
		}
		p.state = sValue
		return true, nil

	case sValue:
		return p.stepValue(b)

	case sDocEnd:
		if isWS(b) {
			return false, nil
		}
		if handled, err := p.tryComment(b, sDocEnd); handled || err != nil {
			return false, err
		}
		p.done = false
		return false, p.errAt(CodeExtraData)

	case sObjectStart:
		return p.stepObjectStart(b)
	case sObjectColon:
		return p.stepObjectColon(b)
	case sObjectComma:
		return p.stepObjectComma(b)
	case sObjectKeyAfterComma:
		return p.stepObjectKeyAfterComma(b)

	case sArrayStart:
		return p.stepArrayStart(b)
	case sArrayComma:
		return p.stepArrayComma(b)
	case sArrayValueAfterComma:
		return p.stepArrayValueAfterComma(b)

	case sInString, sInStringEscape, sStringUnicodeHex,
		sStringAfterHighSurrogate, sStringHighSurrogateEscapeU, sStringLowSurrogateHex:
		return p.stepString(b)

	case sInNumberSign:
		return p.stepNumberSign(b)
	case sInNumberZero:
		return p.stepNumberZero(b)
	case sInNumberInt:
		return p.stepNumberInt(b)
	case sInNumberFracStart:
		return p.stepNumberFracStart(b)
	case sInNumberFrac:
		return p.stepNumberFrac(b)
	case sInNumberExpSign:
		return p.stepNumberExpSign(b)
	case sInNumberExpStart:
		return p.stepNumberExpStart(b)
	case sInNumberExp:
		return p.stepNumberExp(b)

	case sInLiteral:
		return p.stepLiteral(b)

	case sCommentSlash:
		return p.stepCommentSlash(b)
	case sCommentLine:
		return p.stepCommentLine(b)
	case sCommentBlock:
		return p.stepCommentBlock(b)
	case sCommentBlockStar:
		return p.stepCommentBlockStar(b)
	}
	panic("sax: unreachable parser state")
}

func (p *Parser) stepValue(b byte) (bool, error) {
	if isWS(b) {
		return false, nil
	}
	if handled, err := p.tryComment(b, sValue); handled || err != nil {
		return false, err
	}
	switch b {
	case '{':
		if err := p.pushContainer(frameObject); err != nil {
			return false, err
		}
		if err := p.handler.OnObjectBegin(); err != nil {
			return false, err
		}
		p.state = sObjectStart
		return false, nil
	case '[':
		if err := p.pushContainer(frameArray); err != nil {
			return false, err
		}
		if err := p.handler.OnArrayBegin(); err != nil {
			return false, err
		}
		p.state = sArrayStart
		return false, nil
	case '"':
		p.beginString(targetString)
		return false, nil
	case 't':
		return p.beginLiteral('t', "true")
	case 'f':
		return p.beginLiteral('f', "false")
	case 'n':
		return p.beginLiteral('n', "null")
	case '-':
		p.num.Reset()
		p.num.SetNegative()
		p.num.AppendByte(b)
		p.state = sInNumberSign
		return false, nil
	}
	if isDigit(b) {
		p.num.Reset()
		return p.stepNumberSign(b)
	}
	return false, p.errAt(CodeIllegalChar)
}

func (p *Parser) pushContainer(kind frameKind) error {
	if p.Depth() >= p.maxDepth {
		return p.errAt(CodeTooDeep)
	}
	p.stack.PushNontrivial(&frame{kind: kind})
	return nil
}

// valueCompleted runs after any value (scalar or container) finishes,
// advancing the parent frame (if any) or finishing the document.
func (p *Parser) valueCompleted() error {
	top, ok := p.stack.PeekNontrivial().(*frame)
	if !ok {
		if err := p.handler.OnDocumentEnd(); err != nil {
			return err
		}
		p.done = true
		p.state = sDocEnd
		return nil
	}
	top.count++
	if top.kind == frameArray {
		if top.count > p.maxArrayLen {
			return p.errAt(CodeArrayTooLarge)
		}
		p.state = sArrayComma
	} else {
		if top.count > p.maxObjectLen {
			return p.errAt(CodeObjectTooLarge)
		}
		p.state = sObjectComma
	}
	return nil
}

func (p *Parser) closeContainer() error {
	f, _ := p.stack.PopNontrivial().(*frame)
	var err error
	if f.kind == frameArray {
		err = p.handler.OnArrayEnd(f.count)
	} else {
		err = p.handler.OnObjectEnd(f.count)
	}
	if err != nil {
		return err
	}
	return p.valueCompleted()
}

func (p *Parser) stepObjectStart(b byte) (bool, error) {
	if isWS(b) {
		return false, nil
	}
	if b == '"' {
		p.beginString(targetKey)
		return false, nil
	}
	if b == '}' {
		return false, p.closeContainer()
	}
	if handled, err := p.tryComment(b, sObjectStart); handled || err != nil {
		return false, err
	}
	return false, p.errAt(CodeExpectedQuotes)
}

func (p *Parser) stepObjectColon(b byte) (bool, error) {
	if isWS(b) {
		return false, nil
	}
	if b == ':' {
		p.state = sValue
		return false, nil
	}
	if handled, err := p.tryComment(b, sObjectColon); handled || err != nil {
		return false, err
	}
	return false, p.errAt(CodeExpectedColon)
}

func (p *Parser) stepObjectComma(b byte) (bool, error) {
	if isWS(b) {
		return false, nil
	}
	if b == ',' {
		p.state = sObjectKeyAfterComma
		return false, nil
	}
	if b == '}' {
		return false, p.closeContainer()
	}
	if handled, err := p.tryComment(b, sObjectComma); handled || err != nil {
		return false, err
	}
	return false, p.errAt(CodeExpectedComma)
}

func (p *Parser) stepObjectKeyAfterComma(b byte) (bool, error) {
	if isWS(b) {
		return false, nil
	}
	if b == '"' {
		p.beginString(targetKey)
		return false, nil
	}
	if b == '}' && p.opts.AllowTrailingCommas {
		return false, p.closeContainer()
	}
	if handled, err := p.tryComment(b, sObjectKeyAfterComma); handled || err != nil {
		return false, err
	}
	return false, p.errAt(CodeExpectedQuotes)
}

func (p *Parser) stepArrayStart(b byte) (bool, error) {
	if isWS(b) {
		return false, nil
	}
	if b == ']' {
		return false, p.closeContainer()
	}
	if handled, err := p.tryComment(b, sArrayStart); handled || err != nil {
		return false, err
	}
	p.state = sValue
	return true, nil
}

func (p *Parser) stepArrayValueAfterComma(b byte) (bool, error) {
	if isWS(b) {
		return false, nil
	}
	if b == ']' && p.opts.AllowTrailingCommas {
		return false, p.closeContainer()
	}
	if handled, err := p.tryComment(b, sArrayValueAfterComma); handled || err != nil {
		return false, err
	}
	p.state = sValue
	return true, nil
}

func (p *Parser) stepArrayComma(b byte) (bool, error) {
	if isWS(b) {
		return false, nil
	}
	if b == ',' {
		p.state = sArrayValueAfterComma
		return false, nil
	}
	if b == ']' {
		return false, p.closeContainer()
	}
	if handled, err := p.tryComment(b, sArrayComma); handled || err != nil {
		return false, err
	}
	return false, p.errAt(CodeExpectedComma)
}

// --- literals (true/false/null) ---

func (p *Parser) beginLiteral(kind byte, want string) (bool, error) {
	p.litKind = kind
	p.litWant = want
	p.litGot = 0
	p.state = sInLiteral
	return true, nil
}

func (p *Parser) stepLiteral(b byte) (bool, error) {
	if b != p.litWant[p.litGot] {
		return false, p.expectedLiteralErr()
	}
	p.litGot++
	if p.litGot < len(p.litWant) {
		return false, nil
	}
	switch p.litKind {
	case 't':
		if err := p.handler.OnBool(true); err != nil {
			return false, err
		}
	case 'f':
		if err := p.handler.OnBool(false); err != nil {
			return false, err
		}
	case 'n':
		if err := p.handler.OnNull(); err != nil {
			return false, err
		}
	}
	return false, p.valueCompleted()
}

func (p *Parser) expectedLiteralErr() error {
	switch p.litKind {
	case 't':
		return p.errAt(CodeExpectedTrue)
	case 'f':
		return p.errAt(CodeExpectedFalse)
	default:
		return p.errAt(CodeExpectedNull)
	}
}

// --- numbers ---

func (p *Parser) stepNumberSign(b byte) (bool, error) {
	if !isDigit(b) {
		return false, p.errAt(CodeExpectedMantissa)
	}
	if b == '0' {
		p.num.AppendByte(b)
		p.state = sInNumberZero
		return false, nil
	}
	p.num.AddIntegerDigit(b)
	p.num.AppendByte(b)
	p.state = sInNumberInt
	return false, nil
}

func (p *Parser) stepNumberZero(b byte) (bool, error) {
	switch {
	case b == '.':
		p.num.BeginFraction()
		p.num.AppendByte(b)
		p.state = sInNumberFracStart
		return false, nil
	case b == 'e' || b == 'E':
		p.num.BeginExponent()
		p.num.AppendByte(b)
		p.state = sInNumberExpSign
		return false, nil
	case isDigit(b):
		return false, p.errAt(CodeIllegalExtraDigits)
	}
	return true, p.finishNumber(false)
}

func (p *Parser) stepNumberInt(b byte) (bool, error) {
	switch {
	case isDigit(b):
		p.num.AddIntegerDigit(b)
		p.num.AppendByte(b)
		return false, nil
	case b == '.':
		p.num.BeginFraction()
		p.num.AppendByte(b)
		p.state = sInNumberFracStart
		return false, nil
	case b == 'e' || b == 'E':
		p.num.BeginExponent()
		p.num.AppendByte(b)
		p.state = sInNumberExpSign
		return false, nil
	}
	return true, p.finishNumber(false)
}

func (p *Parser) stepNumberFracStart(b byte) (bool, error) {
	if !isDigit(b) {
		return false, p.errAt(CodeExpectedFraction)
	}
	p.num.AddFractionDigit(b)
	p.num.AppendByte(b)
	p.state = sInNumberFrac
	return false, nil
}

func (p *Parser) stepNumberFrac(b byte) (bool, error) {
	switch {
	case isDigit(b):
		p.num.AddFractionDigit(b)
		p.num.AppendByte(b)
		return false, nil
	case b == 'e' || b == 'E':
		p.num.BeginExponent()
		p.num.AppendByte(b)
		p.state = sInNumberExpSign
		return false, nil
	}
	return true, p.finishNumber(false)
}

func (p *Parser) stepNumberExpSign(b byte) (bool, error) {
	if b == '+' || b == '-' {
		p.num.SetExponentSign(b == '-')
		p.num.AppendByte(b)
		p.state = sInNumberExpStart
		return false, nil
	}
	if isDigit(b) {
		p.state = sInNumberExpStart
		return true, nil
	}
	return false, p.errAt(CodeExpectedExponent)
}

func (p *Parser) stepNumberExpStart(b byte) (bool, error) {
	if !isDigit(b) {
		return false, p.errAt(CodeExpectedExponent)
	}
	p.num.AddExponentDigit(b)
	p.num.AppendByte(b)
	p.state = sInNumberExp
	return false, nil
}

func (p *Parser) stepNumberExp(b byte) (bool, error) {
	if isDigit(b) {
		p.num.AddExponentDigit(b)
		p.num.AppendByte(b)
		return false, nil
	}
	return true, p.finishNumber(false)
}

// finishNumber emits the accumulated number to the handler and advances
// past the token via valueCompleted. eof is true when atEOF calls it and
// there is no terminating byte; the step functions that call it on a
// terminating byte return reprocess=true so that byte is dispatched under
// the state valueCompleted moved to.
func (p *Parser) finishNumber(eof bool) error {
	text := p.num.Text()
	if p.opts.Numbers == numlex.ModeNone {
		if err := p.handler.OnNumberPart(text); err != nil {
			return err
		}
		return p.afterNumber(eof)
	}
	switch p.num.Classify() {
	case numlex.KindInt64:
		if err := p.handler.OnInt64(p.num.Int64(), text); err != nil {
			return err
		}
	case numlex.KindUint64:
		if err := p.handler.OnUint64(p.num.Uint64(), text); err != nil {
			return err
		}
	case numlex.KindDouble:
		d, exact := p.num.Double(p.opts.Numbers)
		_ = exact
		if math.IsInf(d, 0) {
			return p.errAt(CodeExponentOverflow)
		}
		if err := p.handler.OnDouble(d, text); err != nil {
			return err
		}
	}
	return p.afterNumber(eof)
}

func (p *Parser) afterNumber(eof bool) error {
	if err := p.valueCompleted(); err != nil {
		return err
	}
	if eof && !p.done {
		return p.errAt(CodeIncomplete)
	}
	return nil
}

// --- strings ---

func (p *Parser) beginString(target stringTarget) {
	p.target = target
	p.strTotal = 0
	p.stack.ResetBytes()
	p.state = sInString
}

func (p *Parser) stepString(b byte) (bool, error) {
	var reprocess bool
	var err error
	switch p.state {
	case sInString:
		reprocess, err = p.stepInString(b)
	case sInStringEscape:
		reprocess, err = p.stepStringEscape(b)
	case sStringUnicodeHex:
		reprocess, err = p.stepUnicodeHex(b, false)
	case sStringAfterHighSurrogate:
		reprocess, err = p.stepAfterHighSurrogate(b)
	case sStringHighSurrogateEscapeU:
		if b != 'u' {
			if p.opts.AllowInvalidUTF16 {
				p.appendRune(replacementChar)
				p.state = sInStringEscape
				return true, nil
			}
			return false, p.errAt(CodeIllegalTrailingSurrogate)
		}
		p.state = sStringLowSurrogateHex
		p.hexVal, p.hexLeft = 0, 4
		return false, nil
	case sStringLowSurrogateHex:
		reprocess, err = p.stepUnicodeHex(b, true)
	default:
		panic("sax: unreachable string state")
	}
	if err != nil {
		return reprocess, err
	}
	if p.strTotal > p.stringLimit() {
		code := CodeStringTooLarge
		if p.target == targetKey {
			code = CodeKeyTooLarge
		}
		return false, p.errAt(code)
	}
	return reprocess, nil
}

// stringLimit returns the configured byte-length ceiling for whichever
// token (key or string value) is currently being scanned.
func (p *Parser) stringLimit() int {
	if p.target == targetKey {
		return p.maxKeyLen
	}
	return p.maxStringLen
}

func (p *Parser) stepInString(b byte) (bool, error) {
	if p.utf8Need > 0 && !isUTF8Continuation(b) {
		if !p.opts.AllowInvalidUTF8 {
			return false, p.errAt(CodeIllegalChar)
		}
		p.utf8Need, p.utf8Have = 0, 0
	}
	switch {
	case b == '"':
		return false, p.finishString()
	case b == '\\':
		p.state = sInStringEscape
		return false, nil
	case b < 0x20:
		return false, p.errAt(CodeIllegalControlChar)
	case b < 0x80:
		p.stack.AppendBytes(b)
		p.strTotal++
		return false, nil
	default:
		return p.stepRawUTF8(b)
	}
}

// stepRawUTF8 validates multibyte UTF-8 payload bytes across write_some
// boundaries using a running need/have continuation counter.
func (p *Parser) stepRawUTF8(b byte) (bool, error) {
	if p.utf8Need == 0 {
		n := utf8SeqLen(b)
		if n <= 0 {
			if p.opts.AllowInvalidUTF8 {
				p.stack.AppendBytes(b)
				p.strTotal++
				return false, nil
			}
			return false, p.errAt(CodeIllegalChar)
		}
		p.utf8Need = n
		p.utf8Have = 0
		p.stack.AppendBytes(b)
		p.strTotal++
		return false, nil
	}
	if !isUTF8Continuation(b) {
		if p.opts.AllowInvalidUTF8 {
			p.utf8Need, p.utf8Have = 0, 0
			p.stack.AppendBytes(b)
			p.strTotal++
			return false, nil
		}
		return false, p.errAt(CodeIllegalChar)
	}
	p.stack.AppendBytes(b)
	p.strTotal++
	p.utf8Have++
	if p.utf8Have == p.utf8Need {
		p.utf8Need, p.utf8Have = 0, 0
	}
	return false, nil
}

func (p *Parser) stepStringEscape(b byte) (bool, error) {
	switch b {
	case '"', '\\', '/':
		p.stack.AppendBytes(b)
		p.strTotal++
		p.state = sInString
		return false, nil
	case 'b':
		p.stack.AppendBytes('\b')
		p.strTotal++
		p.state = sInString
		return false, nil
	case 'f':
		p.stack.AppendBytes('\f')
		p.strTotal++
		p.state = sInString
		return false, nil
	case 'n':
		p.stack.AppendBytes('\n')
		p.strTotal++
		p.state = sInString
		return false, nil
	case 'r':
		p.stack.AppendBytes('\r')
		p.strTotal++
		p.state = sInString
		return false, nil
	case 't':
		p.stack.AppendBytes('\t')
		p.strTotal++
		p.state = sInString
		return false, nil
	case 'u':
		p.hexVal, p.hexLeft = 0, 4
		p.state = sStringUnicodeHex
		return false, nil
	}
	return false, p.errAt(CodeIllegalEscapeChar)
}

// stepUnicodeHex accumulates one \uXXXX escape's four hex digits.
// lowSurrogate distinguishes the second half of a surrogate pair (entered
// via sStringLowSurrogateHex) from a standalone/high escape.
func (p *Parser) stepUnicodeHex(b byte, lowSurrogate bool) (bool, error) {
	v, ok := hexVal(b)
	if !ok {
		return false, p.errAt(CodeExpectedHexDigit)
	}
	p.hexVal = p.hexVal<<4 | v
	p.hexLeft--
	if p.hexLeft > 0 {
		return false, nil
	}
	r := rune(p.hexVal)
	if lowSurrogate {
		return false, p.combineSurrogates(r)
	}
	if r >= 0xD800 && r <= 0xDBFF {
		p.pendingHigh = r
		p.state = sStringAfterHighSurrogate
		return false, nil
	}
	if r >= 0xDC00 && r <= 0xDFFF {
		if p.opts.AllowInvalidUTF16 {
			p.appendRune(replacementChar)
			p.state = sInString
			return false, nil
		}
		return false, p.errAt(CodeIllegalTrailingSurrogate)
	}
	p.appendRune(r)
	p.state = sInString
	return false, nil
}

func (p *Parser) stepAfterHighSurrogate(b byte) (bool, error) {
	if b == '\\' {
		p.state = sStringHighSurrogateEscapeU
		return false, nil
	}
	if p.opts.AllowInvalidUTF16 {
		p.appendRune(replacementChar)
		p.state = sInString
		return true, nil
	}
	return false, p.errAt(CodeIllegalLeadingSurrogate)
}

func (p *Parser) combineSurrogates(low rune) error {
	if low < 0xDC00 || low > 0xDFFF {
		if p.opts.AllowInvalidUTF16 {
			p.appendRune(replacementChar)
			if low >= 0xD800 && low <= 0xDBFF {
				p.pendingHigh = low
				p.state = sStringAfterHighSurrogate
				return nil
			}
			p.appendRune(low)
			p.state = sInString
			return nil
		}
		return p.errAt(CodeIllegalTrailingSurrogate)
	}
	r := 0x10000 + (p.pendingHigh-0xD800)<<10 + (low - 0xDC00) // operator precedence: <<10 binds before both +
	p.appendRune(r)
	p.state = sInString
	return nil
}

func (p *Parser) appendRune(r rune) {
	buf := encodeUTF8Rune(nil, r)
	p.stack.AppendBytes(buf...)
	p.strTotal += len(buf)
}

func (p *Parser) finishString() error {
	text := p.stack.TakeBytes()
	switch p.target {
	case targetKey:
		if err := p.handler.OnKey(text, p.strTotal); err != nil {
			return err
		}
		p.state = sObjectColon
		return nil
	default:
		if err := p.handler.OnString(text, p.strTotal); err != nil {
			return err
		}
		return p.valueCompleted()
	}
}

// --- comments ---

func (p *Parser) stepCommentSlash(b byte) (bool, error) {
	switch b {
	case '/':
		p.stack.ResetBytes()
		p.state = sCommentLine
		return false, nil
	case '*':
		p.stack.ResetBytes()
		p.state = sCommentBlock
		return false, nil
	}
	return false, p.errAt(CodeIllegalChar)
}

func (p *Parser) stepCommentLine(b byte) (bool, error) {
	if b == '\n' {
		return false, p.finishComment()
	}
	p.stack.AppendBytes(b)
	return false, nil
}

func (p *Parser) stepCommentBlock(b byte) (bool, error) {
	if b == '*' {
		p.state = sCommentBlockStar
		return false, nil
	}
	p.stack.AppendBytes(b)
	return false, nil
}

func (p *Parser) stepCommentBlockStar(b byte) (bool, error) {
	if b == '/' {
		return false, p.finishComment()
	}
	p.stack.AppendBytes('*')
	p.state = sCommentBlock
	return true, nil
}

func (p *Parser) finishComment() error {
	text := p.stack.TakeBytes()
	if err := p.handler.OnComment(text); err != nil {
		return err
	}
	p.state = p.pendingState
	return nil
}
