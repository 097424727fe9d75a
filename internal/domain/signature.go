package domain

import (
	"errors"
	"regexp"
	"strings"

	m "github.com/mouse-blink/earlyexit/internal/model"
)

const voidAnnotation = ": Promise<void>"

// signatureRe matches async handlers with two typed parameters:
//
//	async (req: Request, res: Response) =>
//	async function name(req: Request, res: Response): Promise<void> {
//
// Groups: 1 request type, 2 response type, 3 closing paren, 4 annotation.
var signatureRe = regexp.MustCompile(
	`\basync\s*(?:function\b\s*[\w$]*\s*)?` +
		`\(\s*[\w$]+\s*:\s*([\w$.]+)\s*,\s*[\w$]+\s*:\s*([\w$.]+)\s*(\))` +
		`(\s*:\s*Promise\s*<\s*void\s*>)?\s*(?:=>|\{)`)

// HandlerShape lists the parameter types that identify a route handler.
type HandlerShape struct {
	RequestTypes  []string
	ResponseTypes []string
}

// DefaultHandlerShape recognizes (req: Request, res: Response).
func DefaultHandlerShape() HandlerShape {
	return HandlerShape{
		RequestTypes:  []string{"Request"},
		ResponseTypes: []string{"Response"},
	}
}

// SignatureNormalizer adds or removes the Promise<void> return annotation of
// handler signatures.
type SignatureNormalizer struct {
	requestTypes  map[string]struct{}
	responseTypes map[string]struct{}
}

// NewSignatureNormalizer builds a normalizer for the given handler shape.
func NewSignatureNormalizer(shape HandlerShape) (*SignatureNormalizer, error) {
	if len(shape.RequestTypes) == 0 || len(shape.ResponseTypes) == 0 {
		return nil, errors.New("handler request and response types must not be empty")
	}

	return &SignatureNormalizer{
		requestTypes:  toSet(shape.RequestTypes),
		responseTypes: toSet(shape.ResponseTypes),
	}, nil
}

// Patches returns the token edits that bring every handler signature in
// lines to mode. skip reports lines excluded by ignore directives.
func (n *SignatureNormalizer) Patches(lines []m.Line, mode m.AnnotationMode, skip func(line int) bool) []m.Patch {
	if mode != m.AnnotationAdd && mode != m.AnnotationRemove {
		return nil
	}

	var patches []m.Patch

	for i, line := range lines {
		if isCommentLine(strings.TrimSpace(line.Text)) || (skip != nil && skip(i)) {
			continue
		}

		for _, loc := range signatureRe.FindAllStringSubmatchIndex(line.Text, -1) {
			if !n.matchesTypes(line.Text[loc[2]:loc[3]], line.Text[loc[4]:loc[5]]) {
				continue
			}

			annotated := loc[8] >= 0

			switch {
			case mode == m.AnnotationAdd && !annotated:
				patches = append(patches, m.Patch{
					Kind:  m.PatchReplaceToken,
					Line:  i,
					Col:   loc[6],
					Token: ")",
					Text:  ")" + voidAnnotation,
				})
			case mode == m.AnnotationRemove && annotated:
				patches = append(patches, m.Patch{
					Kind:  m.PatchDeleteToken,
					Line:  i,
					Col:   loc[8],
					Token: line.Text[loc[8]:loc[9]],
				})
			}
		}
	}

	return patches
}

func (n *SignatureNormalizer) matchesTypes(requestType, responseType string) bool {
	_, okReq := n.requestTypes[requestType]
	_, okRes := n.responseTypes[responseType]

	return okReq && okRes
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}

	return set
}
