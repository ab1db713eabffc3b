package content

import "strings"

const attrChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!#$&+-.^_`|~"

// AttachmentDisposition builds a Content-Disposition header with both an
// ASCII fallback filename and the RFC 5987 UTF-8 form, so non-Latin names
// survive the download dialog.
func AttachmentDisposition(name string) string {
	return `attachment; filename="` + asciiFallback(name) + `"; filename*=UTF-8''` + rfc5987Encode(name)
}

// asciiFallback replaces every byte outside printable ASCII, plus the two
// characters that would break a quoted-string, with an underscore.
func asciiFallback(name string) string {
	out := []byte(name)
	for i, b := range out {
		if b < 0x20 || b > 0x7e || b == '"' || b == '\\' {
			out[i] = '_'
		}
	}
	return string(out)
}

// rfc5987Encode percent-encodes everything outside the attr-char set defined
// by RFC 5987.
func rfc5987Encode(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if strings.IndexByte(attrChars, ch) >= 0 {
			b.WriteByte(ch)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexDigits[ch>>4])
		b.WriteByte(hexDigits[ch&0xf])
	}
	return b.String()
}

const hexDigits = "0123456789ABCDEF"
