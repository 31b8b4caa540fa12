package verify

import (
	"bytes"
	"errors"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const (
	nulByteConstant              = byte(0)
	binaryContentMessageConstant = "binary content detected"
)

var errBinaryContent = errors.New(binaryContentMessageConstant)

// ClassifyContent classifies file content: any NUL byte marks it binary, otherwise it
// must strictly decode as UTF-8.
func ClassifyContent(content []byte) Classification {
	if bytes.IndexByte(content, nulByteConstant) >= 0 {
		return ClassificationBinary
	}
	if _, _, validationError := transform.Bytes(encoding.UTF8Validator, content); validationError != nil {
		return ClassificationInvalidText
	}
	return ClassificationValidText
}

// binaryScanningReader passes bytes through while remembering whether a NUL byte or a read error was seen.
type binaryScanningReader struct {
	source      io.Reader
	binarySeen  bool
	readFailure error
}

func (reader *binaryScanningReader) Read(buffer []byte) (int, error) {
	bytesRead, readError := reader.source.Read(buffer)
	if bytes.IndexByte(buffer[:bytesRead], nulByteConstant) >= 0 {
		reader.binarySeen = true
		return bytesRead, errBinaryContent
	}
	if readError != nil && !errors.Is(readError, io.EOF) {
		reader.readFailure = readError
	}
	return bytesRead, readError
}

// classifyStream classifies content read from source in a single bounded-memory pass.
// It produces the same classification as ClassifyContent for the same bytes.
func classifyStream(source io.Reader) (Classification, error) {
	scanner := &binaryScanningReader{source: source}

	_, validationError := io.Copy(io.Discard, transform.NewReader(scanner, encoding.UTF8Validator))
	if validationError == nil {
		return ClassificationValidText, nil
	}
	if scanner.binarySeen {
		return ClassificationBinary, nil
	}
	if scanner.readFailure != nil {
		return "", scanner.readFailure
	}

	// A NUL byte later in the file still makes it binary.
	if _, drainError := io.Copy(io.Discard, scanner); drainError != nil && !scanner.binarySeen {
		return "", drainError
	}
	if scanner.binarySeen {
		return ClassificationBinary, nil
	}
	return ClassificationInvalidText, nil
}
