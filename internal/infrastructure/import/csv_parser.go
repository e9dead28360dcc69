package csvimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"
)

// CSVParser reads UTF-8 CSV input, stripping a BOM when one is present
type CSVParser struct {
	delimiter  rune
	lazyQuotes bool
	trimSpace  bool
	headerMap  map[string]int
	headers    []string
	currentRow int
	totalRows  int
	reader     *csv.Reader
	bufReader  *bufio.Reader
}

// ParserOption tweaks the parser before the first read
type ParserOption func(*CSVParser)

// WithDelimiter swaps the comma for another field separator
func WithDelimiter(d rune) ParserOption {
	return func(p *CSVParser) {
		p.delimiter = d
	}
}

// WithLazyQuotes tolerates stray quotes inside fields
func WithLazyQuotes(lazy bool) ParserOption {
	return func(p *CSVParser) {
		p.lazyQuotes = lazy
	}
}

// WithTrimSpace strips surrounding whitespace from every field
func WithTrimSpace(trim bool) ParserOption {
	return func(p *CSVParser) {
		p.trimSpace = trim
	}
}

// NewCSVParser wraps the reader, checks the encoding and readies a parser
func NewCSVParser(r io.Reader, opts ...ParserOption) (*CSVParser, error) {
	parser := &CSVParser{
		delimiter:  ',',
		lazyQuotes: true,
		trimSpace:  true,
		headerMap:  make(map[string]int),
	}

	for _, opt := range opts {
		opt(parser)
	}

	parser.bufReader = bufio.NewReader(r)

	content, err := parser.bufReader.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// UTF-8 BOM is EF BB BF
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		_, _ = parser.bufReader.Discard(3)
	}

	if err := validateUTF8(parser.bufReader); err != nil {
		return nil, err
	}

	parser.reader = csv.NewReader(parser.bufReader)
	parser.reader.Comma = parser.delimiter
	parser.reader.LazyQuotes = parser.lazyQuotes
	parser.reader.TrimLeadingSpace = parser.trimSpace
	parser.reader.FieldsPerRecord = -1 // Short rows are reported per-row, not fatal

	return parser, nil
}

// validateUTF8 peeks at the head of the stream and rejects non-UTF-8 input
func validateUTF8(r *bufio.Reader) error {
	const checkSize = 4096
	content, err := r.Peek(checkSize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file for encoding validation: %w", err)
	}

	if len(content) == 0 {
		return ErrEmptyFile
	}

	if !utf8.Valid(content) {
		return ErrInvalidEncoding
	}

	return nil
}

// ParseHeader consumes the first row and records the column names
func (p *CSVParser) ParseHeader() error {
	record, err := p.reader.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	p.headers = make([]string, len(record))
	for i, h := range record {
		header := h
		if p.trimSpace {
			header = trimSpaces(header)
		}
		p.headers[i] = header
		p.headerMap[header] = i
	}

	if len(p.headers) == 0 {
		return ErrMissingHeader
	}

	p.currentRow = 1 // Header is row 1

	return nil
}

// Headers returns the column names in file order
func (p *CSVParser) Headers() []string {
	return p.headers
}

// HeaderMap maps each column name to its index
func (p *CSVParser) HeaderMap() map[string]int {
	return p.headerMap
}

// HasHeader reports whether the named column exists
func (p *CSVParser) HasHeader(name string) bool {
	_, ok := p.headerMap[name]
	return ok
}

// Row is one parsed data row, keyed by header name
type Row struct {
	LineNumber int
	Data       map[string]string
	RawFields  []string
}

// Get returns the value in the named column, or empty
func (r *Row) Get(header string) string {
	return r.Data[header]
}

// GetOrDefault returns the column value, falling back when absent or empty
func (r *Row) GetOrDefault(header, defaultVal string) string {
	if val, ok := r.Data[header]; ok && val != "" {
		return val
	}
	return defaultVal
}

// IsEmpty reports whether every field of the row is blank
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// ReadRow returns the next data row, or io.EOF when the file is done
func (p *CSVParser) ReadRow() (*Row, error) {
	record, err := p.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		p.currentRow++
		return nil, fmt.Errorf("error reading row %d: %w", p.currentRow, err)
	}

	p.currentRow++
	p.totalRows++

	row := &Row{
		LineNumber: p.currentRow,
		Data:       make(map[string]string, len(p.headers)),
		RawFields:  record,
	}

	for i, header := range p.headers {
		if i < len(record) {
			value := record[i]
			if p.trimSpace {
				value = trimSpaces(value)
			}
			row.Data[header] = value
		} else {
			row.Data[header] = ""
		}
	}

	return row, nil
}

// ReadAllRows drains the file, dropping blank rows
func (p *CSVParser) ReadAllRows() ([]*Row, error) {
	var rows []*Row

	for {
		row, err := p.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, err
		}

		if row.IsEmpty() {
			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// CurrentRow is the 1-based line number of the last row read
func (p *CSVParser) CurrentRow() int {
	return p.currentRow
}

// TotalRows counts the data rows read so far
func (p *CSVParser) TotalRows() int {
	return p.totalRows
}

// ParseFromBytes is a convenience over NewCSVParser for in-memory input
func ParseFromBytes(data []byte, opts ...ParserOption) (*CSVParser, error) {
	return NewCSVParser(bytes.NewReader(data), opts...)
}

// trimSpaces trims the whitespace runes we accept around fields
func trimSpaces(s string) string {
	start := 0
	end := len(s)

	for start < end {
		r, size := utf8.DecodeRuneInString(s[start:])
		if !isWhitespace(r) {
			break
		}
		start += size
	}

	for end > start {
		r, size := utf8.DecodeLastRuneInString(s[:end])
		if !isWhitespace(r) {
			break
		}
		end -= size
	}

	return s[start:end]
}

// isWhitespace matches the runes trimSpaces removes
func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// ValidateHeaders reports the required columns the file is missing
func (p *CSVParser) ValidateHeaders(required []string) []string {
	var missing []string
	for _, h := range required {
		if !p.HasHeader(h) {
			missing = append(missing, h)
		}
	}
	return missing
}

// GetColumnIndex returns the position of the named column, or -1
func (p *CSVParser) GetColumnIndex(name string) (int, bool) {
	idx, ok := p.headerMap[name]
	return idx, ok
}
