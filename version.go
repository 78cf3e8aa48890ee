package dicompolice

// Profile represents an IHE integration profile that parameterizes
// validation. The profile is always passed explicitly; there is no
// process-wide "active profile" state.
type Profile string

// Supported profiles.
const (
	// ProfileXDSIManifest is the IHE Cross-Enterprise Document Sharing
	// for Imaging manifest profile.
	ProfileXDSIManifest Profile = "IHEXDSIManifest"
	// ProfileMADO is the IHE Manifest-based Access to DICOM Objects profile.
	ProfileMADO Profile = "IHEMADO"
	// ProfileNone applies only the base document-type rules.
	ProfileNone Profile = ""
)

// String returns the profile name.
func (p Profile) String() string {
	if p == ProfileNone {
		return "none"
	}
	return string(p)
}

// IsValid returns true if this is a supported profile.
func (p Profile) IsValid() bool {
	switch p {
	case ProfileXDSIManifest, ProfileMADO, ProfileNone:
		return true
	default:
		return false
	}
}

// TemplateIDMandatory reports whether the profile requires the root
// content item to explicitly identify its template. When false, a
// missing template identification is advisory only.
func (p Profile) TemplateIDMandatory() bool {
	switch p {
	case ProfileXDSIManifest, ProfileMADO:
		return true
	default:
		return false
	}
}

// ParseProfile maps a profile name to a Profile, accepting "none" and
// the empty string for the default.
func ParseProfile(name string) (Profile, bool) {
	switch name {
	case "", "none":
		return ProfileNone, true
	case string(ProfileXDSIManifest):
		return ProfileXDSIManifest, true
	case string(ProfileMADO):
		return ProfileMADO, true
	default:
		return ProfileNone, false
	}
}

// Version is the library version.
const Version = "0.3.1"
