package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/afero"
	"github.com/valyala/fastjson"

	"github.com/mcncl/jsonconv/internal/errors" // Custom errors package
	"github.com/mcncl/jsonconv/internal/models"
)

// ArrayElementSegment is the path segment recorded for the sampled element of an array.
const ArrayElementSegment = "0"

// Parse reads one JSON value from reader and builds its intermediate representation.
func Parse(reader io.Reader) (*models.Node, error) {
	raw, err := decodeRaw(reader)
	if err != nil {
		return nil, err
	}

	value, err := decodeValue(raw)
	if err != nil {
		return nil, errors.NewParsingError("failed to decode JSON", stderrors.Join(errors.ErrInvalidJSON, err))
	}

	return Build(value, nil), nil
}

// decodeValue builds the ordered value tree of an already validated document.
// fastjson rejects nesting at or past fastjson.MaxDepth, so deeper documents
// are walked token by token instead.
func decodeValue(raw []byte) (models.JSONValue, error) {
	if nestingDepth(raw) >= fastjson.MaxDepth {
		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.UseNumber()
		return readToken(decoder)
	}

	var p fastjson.Parser
	doc, err := p.ParseBytes(raw)
	if err != nil {
		return nil, err
	}
	return toValue(doc)
}

// nestingDepth returns the deepest level of arrays and objects in raw.
func nestingDepth(raw []byte) int {
	depth, deepest := 0, 0
	inString, escaped := false, false
	for _, c := range raw {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
			deepest = max(deepest, depth)
		case '}', ']':
			depth--
		}
	}
	return deepest
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (*models.Node, error) {
	return Parse(strings.NewReader(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(fs afero.Fs, filePath string) (*models.Node, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := fs.Open(filePath)
	if err != nil {
		// Check if the file doesn't exist
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() { _ = file.Close() }()

	// Check for empty file before parsing
	stat, err := file.Stat()
	if err != nil {
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}

// decodeRaw checks that reader holds exactly one well-formed JSON value and returns it.
func decodeRaw(reader io.Reader) (json.RawMessage, error) {
	decoder := json.NewDecoder(reader)

	var raw json.RawMessage
	if err := decoder.Decode(&raw); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return nil, errors.NewParsingError(
				fmt.Sprintf("JSON syntax error at offset %d: %s", syntaxError.Offset, syntaxError.Error()),
				errors.ErrInvalidJSON,
			)
		}
		if stderrors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
		}
		return nil, errors.NewParsingError("failed to decode JSON", err)
	}

	// Anything other than whitespace after the first value is rejected.
	if _, err := decoder.Token(); !stderrors.Is(err, io.EOF) {
		if err != nil {
			return nil, errors.NewParsingError("invalid trailing data after first JSON value", errors.ErrInvalidJSON)
		}
		return nil, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	}

	return raw, nil
}

// toValue converts a fastjson value into the decoded value model.
func toValue(v *fastjson.Value) (models.JSONValue, error) {
	switch v.Type() {
	case fastjson.TypeNull:
		return nil, nil
	case fastjson.TypeTrue:
		return true, nil
	case fastjson.TypeFalse:
		return false, nil
	case fastjson.TypeNumber:
		return parseNumber(v.String())
	case fastjson.TypeString:
		b, err := v.StringBytes()
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case fastjson.TypeArray:
		items, err := v.Array()
		if err != nil {
			return nil, err
		}
		arr := make([]models.JSONValue, 0, len(items))
		for _, item := range items {
			val, err := toValue(item)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		return arr, nil
	case fastjson.TypeObject:
		obj, err := v.Object()
		if err != nil {
			return nil, err
		}
		m := orderedmap.New()
		var visitErr error
		obj.Visit(func(key []byte, item *fastjson.Value) {
			if visitErr != nil {
				return
			}
			val, err := toValue(item)
			if err != nil {
				visitErr = err
				return
			}
			// A repeated key keeps its first position and its last value.
			m.Set(string(key), val)
		})
		if visitErr != nil {
			return nil, visitErr
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unexpected json value type: %s", v.Type())
	}
}

// readToken reads one value from decoder, which must have UseNumber set.
func readToken(decoder *json.Decoder) (models.JSONValue, error) {
	tok, err := decoder.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			arr := make([]models.JSONValue, 0)
			for decoder.More() {
				val, err := readToken(decoder)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			_, err := decoder.Token()
			return arr, err
		case '{':
			m := orderedmap.New()
			for decoder.More() {
				keyTok, err := decoder.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", keyTok)
				}
				val, err := readToken(decoder)
				if err != nil {
					return nil, err
				}
				// A repeated key keeps its first position and its last value.
				m.Set(key, val)
			}
			_, err := decoder.Token()
			return m, err
		default:
			return nil, fmt.Errorf("unexpected delimiter %s", t)
		}
	case json.Number:
		return parseNumber(t.String())
	case string, bool, nil:
		return t, nil
	default:
		return nil, fmt.Errorf("unexpected json token %v", tok)
	}
}

func parseNumber(s string) (models.JSONValue, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !stderrors.Is(err, strconv.ErrRange) {
		return nil, err
	}
	// Out of range numbers become +-Inf or 0, as in JavaScript.
	return f, nil
}
