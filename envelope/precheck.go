// Package envelope validates the binary container of a DICOM file
// before any content parsing is trusted: the 128-byte preamble, the
// "DICM" magic cookie, and a syntactically consistent file meta
// information block.
//
// The check is a pure function of the byte slice; it performs no I/O
// and never panics on malformed input.
package envelope

import (
	"encoding/binary"
	"fmt"

	dp "github.com/nhermab/DICOMPolice-sub004"
)

const (
	preambleLength = 128
	magicCookie    = "DICM"

	// minEnvelopeLength is the preamble, the magic cookie, and the
	// 12-byte explicit-VR group length element (0002,0000) UL 4.
	minEnvelopeLength = preambleLength + len(magicCookie) + 12
)

// CheckName identifies this check in issue output.
const CheckName = "container-precheck"

// Check validates the binary envelope of raw. The orchestrator
// short-circuits the run when the returned result is invalid, because
// no attribute tree can be trusted from a broken container.
func Check(raw []byte) *dp.Result {
	result := dp.NewResult()

	if len(raw) < minEnvelopeLength {
		result.AddIssue(dp.Error(dp.IssueTypeStructure).
			Diagnostics(fmt.Sprintf("file is %d bytes; too short for a DICM preamble and file meta header", len(raw))).
			Check(CheckName).
			Build())
		return result
	}

	if string(raw[preambleLength:preambleLength+len(magicCookie)]) != magicCookie {
		result.AddIssue(dp.Error(dp.IssueTypeStructure).
			Diagnostics("missing DICM magic cookie after the 128-byte preamble; not a DICOM part-10 file").
			Check(CheckName).
			Build())
		return result
	}

	checkMetaHeader(raw, result)

	if result.Valid {
		result.AddIssue(dp.Info(dp.IssueTypeInformational).
			Diagnostics("container envelope is well-formed (preamble, magic cookie, file meta header)").
			Check(CheckName).
			Build())
	}
	return result
}

// checkMetaHeader validates the file meta information block: element
// (0002,0000) FileMetaInformationGroupLength must be present, encoded
// as explicit VR little endian, and declare a length that stays inside
// the buffer. The meta header is always explicit VR little endian
// regardless of the transfer syntax of the dataset that follows.
func checkMetaHeader(raw []byte, result *dp.Result) {
	off := preambleLength + len(magicCookie)
	header := raw[off:]

	group := binary.LittleEndian.Uint16(header[0:2])
	element := binary.LittleEndian.Uint16(header[2:4])
	if group != 0x0002 || element != 0x0000 {
		result.AddIssue(dp.Error(dp.IssueTypeStructure).
			Diagnostics(fmt.Sprintf("file meta header must start with (0002,0000) FileMetaInformationGroupLength, found (%04x,%04x)", group, element)).
			At("FileMetaInformationGroupLength").
			Check(CheckName).
			Build())
		return
	}

	vr := string(header[4:6])
	if vr != "UL" {
		result.AddIssue(dp.Error(dp.IssueTypeStructure).
			Diagnostics(fmt.Sprintf("FileMetaInformationGroupLength has VR %q; must be UL", vr)).
			At("FileMetaInformationGroupLength").
			Check(CheckName).
			Build())
		return
	}

	valueLength := binary.LittleEndian.Uint16(header[6:8])
	if valueLength != 4 {
		result.AddIssue(dp.Error(dp.IssueTypeStructure).
			Diagnostics(fmt.Sprintf("FileMetaInformationGroupLength value length is %d; must be 4", valueLength)).
			At("FileMetaInformationGroupLength").
			Check(CheckName).
			Build())
		return
	}

	groupLength := binary.LittleEndian.Uint32(header[8:12])
	metaEnd := off + 12 + int(groupLength)
	if metaEnd > len(raw) {
		result.AddIssue(dp.Error(dp.IssueTypeStructure).
			Diagnostics(fmt.Sprintf("file meta group declares %d bytes but only %d remain; header is truncated or corrupt", groupLength, len(raw)-off-12)).
			At("FileMetaInformationGroupLength").
			Check(CheckName).
			Build())
	}
}
