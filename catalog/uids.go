// Package catalog holds the static reference data the engine validates
// against: known SOP Class UIDs, known transfer syntax UIDs, and the
// structured-report templates for manifest documents.
//
// All catalog data is immutable after initialization and safe for
// concurrent reads from parallel validation runs.
package catalog

// UIDs the engine refers to by name.
const (
	// UIDKeyObjectSelection is the Key Object Selection Document Storage
	// SOP Class, the document type of an imaging manifest.
	UIDKeyObjectSelection = "1.2.840.10008.5.1.4.1.1.88.59"

	// UIDVerification is the Verification SOP Class. Its appearance as a
	// document content type is almost always a copy-paste mistake.
	UIDVerification = "1.2.840.10008.1.1"
)

// knownSOPClasses maps storage SOP Class UIDs to their names.
var knownSOPClasses = map[string]string{
	UIDVerification:                 "Verification SOP Class",
	"1.2.840.10008.5.1.4.1.1.1":     "Computed Radiography Image Storage",
	"1.2.840.10008.5.1.4.1.1.1.1":   "Digital X-Ray Image Storage - For Presentation",
	"1.2.840.10008.5.1.4.1.1.1.1.1": "Digital X-Ray Image Storage - For Processing",
	"1.2.840.10008.5.1.4.1.1.1.2":   "Digital Mammography X-Ray Image Storage - For Presentation",
	"1.2.840.10008.5.1.4.1.1.1.2.1": "Digital Mammography X-Ray Image Storage - For Processing",
	"1.2.840.10008.5.1.4.1.1.2":     "CT Image Storage",
	"1.2.840.10008.5.1.4.1.1.2.1":   "Enhanced CT Image Storage",
	"1.2.840.10008.5.1.4.1.1.3.1":   "Ultrasound Multi-frame Image Storage",
	"1.2.840.10008.5.1.4.1.1.4":     "MR Image Storage",
	"1.2.840.10008.5.1.4.1.1.4.1":   "Enhanced MR Image Storage",
	"1.2.840.10008.5.1.4.1.1.6.1":   "Ultrasound Image Storage",
	"1.2.840.10008.5.1.4.1.1.7":     "Secondary Capture Image Storage",
	"1.2.840.10008.5.1.4.1.1.7.2":   "Multi-frame Grayscale Byte Secondary Capture Image Storage",
	"1.2.840.10008.5.1.4.1.1.7.4":   "Multi-frame True Color Secondary Capture Image Storage",
	"1.2.840.10008.5.1.4.1.1.9.1.1": "12-lead ECG Waveform Storage",
	"1.2.840.10008.5.1.4.1.1.9.1.2": "General ECG Waveform Storage",
	"1.2.840.10008.5.1.4.1.1.11.1":  "Grayscale Softcopy Presentation State Storage",
	"1.2.840.10008.5.1.4.1.1.12.1":  "X-Ray Angiographic Image Storage",
	"1.2.840.10008.5.1.4.1.1.12.2":  "X-Ray Radiofluoroscopic Image Storage",
	"1.2.840.10008.5.1.4.1.1.20":    "Nuclear Medicine Image Storage",
	"1.2.840.10008.5.1.4.1.1.66":    "Raw Data Storage",
	"1.2.840.10008.5.1.4.1.1.88.11": "Basic Text SR Storage",
	"1.2.840.10008.5.1.4.1.1.88.22": "Enhanced SR Storage",
	"1.2.840.10008.5.1.4.1.1.88.33": "Comprehensive SR Storage",
	UIDKeyObjectSelection:           "Key Object Selection Document Storage",
	"1.2.840.10008.5.1.4.1.1.104.1": "Encapsulated PDF Storage",
	"1.2.840.10008.5.1.4.1.1.128":   "Positron Emission Tomography Image Storage",
	"1.2.840.10008.5.1.4.1.1.481.1": "RT Image Storage",
	"1.2.840.10008.5.1.4.1.1.481.2": "RT Dose Storage",
	"1.2.840.10008.5.1.4.1.1.481.3": "RT Structure Set Storage",
	"1.2.840.10008.5.1.4.1.1.481.5": "RT Plan Storage",
}

// knownTransferSyntaxes is the set of transfer syntax UIDs, used to
// detect a transport identifier placed where a content-type identifier
// belongs.
var knownTransferSyntaxes = map[string]struct{}{
	"1.2.840.10008.1.2":       {}, // Implicit VR Little Endian
	"1.2.840.10008.1.2.1":     {}, // Explicit VR Little Endian
	"1.2.840.10008.1.2.1.99":  {}, // Deflated Explicit VR Little Endian
	"1.2.840.10008.1.2.2":     {}, // Explicit VR Big Endian (retired)
	"1.2.840.10008.1.2.4.50":  {}, // JPEG Baseline (Process 1)
	"1.2.840.10008.1.2.4.51":  {}, // JPEG Extended (Process 2 & 4)
	"1.2.840.10008.1.2.4.57":  {}, // JPEG Lossless, Non-Hierarchical (Process 14)
	"1.2.840.10008.1.2.4.70":  {}, // JPEG Lossless, First-Order Prediction
	"1.2.840.10008.1.2.4.80":  {}, // JPEG-LS Lossless
	"1.2.840.10008.1.2.4.81":  {}, // JPEG-LS Lossy (Near-Lossless)
	"1.2.840.10008.1.2.4.90":  {}, // JPEG 2000 Image Compression (Lossless Only)
	"1.2.840.10008.1.2.4.91":  {}, // JPEG 2000 Image Compression
	"1.2.840.10008.1.2.4.100": {}, // MPEG2 Main Profile / Main Level
	"1.2.840.10008.1.2.4.102": {}, // MPEG-4 AVC/H.264 High Profile
	"1.2.840.10008.1.2.5":     {}, // RLE Lossless
}

// SOPClassName returns the human-readable name of a known SOP Class UID.
func SOPClassName(uid string) (string, bool) {
	name, ok := knownSOPClasses[uid]
	return name, ok
}

// IsKnownSOPClass reports whether the UID is a known content-type
// identifier.
func IsKnownSOPClass(uid string) bool {
	_, ok := knownSOPClasses[uid]
	return ok
}

// IsTransferSyntax reports whether the UID is a known transport-level
// encoding identifier.
func IsTransferSyntax(uid string) bool {
	_, ok := knownTransferSyntaxes[uid]
	return ok
}

// KnownSOPClasses returns the uid -> name mapping. Callers must treat
// the returned map as read-only.
func KnownSOPClasses() map[string]string {
	return knownSOPClasses
}

// KnownTransferSyntaxes returns the transfer syntax UID set. Callers
// must treat the returned map as read-only.
func KnownTransferSyntaxes() map[string]struct{} {
	return knownTransferSyntaxes
}
