// Package loader adapts the external DICOM parser to the engine's
// attribute-tree model. It is the concrete binding of the "parser"
// collaborator: raw bytes in, a read-only dataset tree out.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/suyashkumar/dicom"

	"github.com/nhermab/DICOMPolice-sub004/dataset"
)

// ErrParse indicates the byte stream could not be parsed as a DICOM
// dataset. The engine maps it to a single processing error issue and
// stops the run; it is never a crash.
var ErrParse = errors.New("loader: cannot parse DICOM stream")

// Parse decodes raw into a dataset tree. The container envelope should
// already have passed the pre-check; Parse still fails cleanly (with
// ErrParse wrapped) on anything the underlying parser rejects.
func Parse(raw []byte) (*dataset.Dataset, error) {
	parsed, err := dicom.Parse(bytes.NewReader(raw), int64(len(raw)), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return convertDataset(parsed.Elements), nil
}

// ParseFile reads and decodes a file. Read errors pass through
// unwrapped so callers can distinguish file access problems from parse
// failures.
func ParseFile(path string) (*dataset.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// convertDataset maps parsed elements into the engine's model,
// recursing into sequence items.
func convertDataset(elements []*dicom.Element) *dataset.Dataset {
	ds := &dataset.Dataset{
		Elements: make([]*dataset.Element, 0, len(elements)),
	}

	for _, e := range elements {
		if e == nil {
			continue
		}
		out := &dataset.Element{
			Tag: dataset.Tag{Group: e.Tag.Group, Element: e.Tag.Element},
			VR:  e.RawValueRepresentation,
		}

		if e.Value != nil && e.Value.ValueType() == dicom.Sequences {
			out.VR = "SQ"
			items, _ := e.Value.GetValue().([]*dicom.SequenceItemValue)
			out.Items = make([]*dataset.Dataset, 0, len(items))
			for _, item := range items {
				if item == nil {
					continue
				}
				nested, _ := item.GetValue().([]*dicom.Element)
				out.Items = append(out.Items, convertDataset(nested))
			}
		} else if e.Value != nil {
			out.Value = e.Value.GetValue()
		}

		ds.Add(out)
	}

	return ds
}
