package draft

// DocumentType is the backend's document kind for the staff pointers this
// workflow registers.
type DocumentType string

const (
	DocumentPhoto     DocumentType = "PHOTO"
	DocumentSignature DocumentType = "SIGNATURE"
	DocumentStamp     DocumentType = "STAMP"
)

// DocumentRef is a file pointer collected by the photo/biometric step.
type DocumentRef struct {
	Type DocumentType
	URL  string
}

var documentKeys = []struct {
	typ  DocumentType
	keys []string
}{
	{DocumentPhoto, []string{"photo_url", "photoUrl", "photo"}},
	{DocumentSignature, []string{"signature_url", "signatureUrl", "signature"}},
	{DocumentStamp, []string{"stamp_url", "stampUrl", "stamp"}},
}

// DocumentURL returns the URL for one document type, looking in the personal
// section first and the photo_biometric section second.
func (d Document) DocumentURL(t DocumentType) string {
	for _, dk := range documentKeys {
		if dk.typ != t {
			continue
		}
		if u := d.Personal().String(dk.keys...); u != "" {
			return u
		}
		return d.Section(SectionPhotoBiometric).String(dk.keys...)
	}
	return ""
}

// Documents returns photo, signature and stamp pointers in that order,
// skipping the ones without a URL.
func (d Document) Documents() []DocumentRef {
	out := make([]DocumentRef, 0, len(documentKeys))
	for _, dk := range documentKeys {
		if u := d.DocumentURL(dk.typ); u != "" {
			out = append(out, DocumentRef{Type: dk.typ, URL: u})
		}
	}
	return out
}
