package dom

import "strings"

// Name validation follows the permissive rules browsers actually implement
// rather than strict XML 1.0 Name productions.

// isASCIIAlpha checks if a rune is an ASCII letter.
func isASCIIAlpha(ch rune) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}

// isASCIIWhitespace checks for tab, newline, form feed, carriage return, space.
func isASCIIWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\f' || r == '\r'
}

// isValidElementName checks if a string is acceptable as an element local
// name. Names starting with an ASCII letter may contain anything except NULL,
// ASCII whitespace, '/' and '>'; names starting with ':', '_' or a non-ASCII
// character are restricted to alphanumerics, '-', '.', ':', '_' and non-ASCII.
func isValidElementName(name string) bool {
	if name == "" {
		return false
	}

	runes := []rune(name)
	first := runes[0]

	if isASCIIAlpha(first) {
		for _, ch := range runes[1:] {
			if ch == 0 || isASCIIWhitespace(ch) || ch == '/' || ch == '>' {
				return false
			}
		}
		return true
	}
	if first == ':' || first == '_' || first >= 0x80 {
		for _, ch := range runes[1:] {
			if isASCIIAlpha(ch) || (ch >= '0' && ch <= '9') ||
				ch == '-' || ch == '.' || ch == ':' || ch == '_' || ch >= 0x80 {
				continue
			}
			return false
		}
		return true
	}
	return false
}

// IsValidAttributeLocalName checks if a string is a valid attribute local
// name. A string is valid if it is non-empty and does not contain ASCII
// whitespace, NULL, '/', '=' or '>'.
func IsValidAttributeLocalName(name string) bool {
	if len(name) == 0 {
		return false
	}
	for _, r := range name {
		if isASCIIWhitespace(r) || r == '\x00' || r == '/' || r == '=' || r == '>' {
			return false
		}
	}
	return true
}

// isValidDoctypeName rejects NULL, ASCII whitespace and '>'.
func isValidDoctypeName(name string) bool {
	if name == "" {
		return false
	}
	for _, ch := range name {
		if ch == 0 || isASCIIWhitespace(ch) || ch == '>' {
			return false
		}
	}
	return true
}

// XML namespace URIs used by validate-and-extract.
const (
	XMLNamespaceURI   = "http://www.w3.org/XML/1998/namespace"
	XMLNSNamespaceURI = "http://www.w3.org/2000/xmlns/"
)

// ValidateProcessingInstructionTarget validates a processing instruction
// target name.
func ValidateProcessingInstructionTarget(target string) error {
	if !isValidElementName(target) || strings.Contains(target, ":") {
		return ErrInvalidCharacter("The target is not a valid name.")
	}
	return nil
}

// ValidateProcessingInstructionData rejects data containing "?>".
func ValidateProcessingInstructionData(data string) error {
	if strings.Contains(data, "?>") {
		return ErrInvalidCharacter("The data contains the invalid sequence '?>'.")
	}
	return nil
}

// ValidateAndExtractQualifiedName validates a qualified name and extracts
// (namespace, prefix, localName) per the DOM "validate and extract" algorithm.
func ValidateAndExtractQualifiedName(namespaceURI, qualifiedName string) (string, string, string, error) {
	if err := validateQualifiedName(qualifiedName); err != nil {
		return "", "", "", err
	}

	prefix := ""
	localName := qualifiedName
	if idx := strings.Index(qualifiedName, ":"); idx >= 0 {
		prefix = qualifiedName[:idx]
		localName = qualifiedName[idx+1:]
	}

	if prefix != "" && namespaceURI == "" {
		return "", "", "", ErrNamespace("Prefix is not allowed when namespace is null.")
	}
	if prefix == "xml" && namespaceURI != XMLNamespaceURI {
		return "", "", "", ErrNamespace("The 'xml' prefix must be used with the XML namespace.")
	}
	if (qualifiedName == "xmlns" || prefix == "xmlns") && namespaceURI != XMLNSNamespaceURI {
		return "", "", "", ErrNamespace("The 'xmlns' prefix must be used with the XMLNS namespace.")
	}
	if namespaceURI == XMLNSNamespaceURI && qualifiedName != "xmlns" && prefix != "xmlns" {
		return "", "", "", ErrNamespace("The XMLNS namespace requires the 'xmlns' prefix or local name.")
	}

	return namespaceURI, prefix, localName, nil
}

// validateQualifiedName checks the shape of a qualified name: at most one
// colon, non-empty prefix and local name around it, valid name characters.
func validateQualifiedName(qualifiedName string) error {
	if qualifiedName == "" {
		return ErrInvalidCharacter("The string contains invalid characters.")
	}

	colonIndex := strings.Index(qualifiedName, ":")
	if colonIndex < 0 {
		if !isValidElementName(qualifiedName) {
			return ErrInvalidCharacter("The string contains invalid characters.")
		}
		return nil
	}

	prefix := qualifiedName[:colonIndex]
	localName := qualifiedName[colonIndex+1:]
	if prefix == "" || localName == "" {
		return ErrInvalidCharacter("The qualified name has an empty prefix or local name.")
	}
	if strings.Contains(localName, ":") {
		return ErrNamespace("The qualified name contains multiple colons.")
	}
	if !isValidElementName(prefix) || !isValidElementName(localName) {
		return ErrInvalidCharacter("The string contains invalid characters.")
	}
	return nil
}

// toASCIILowercase converts ASCII letters A-Z to lowercase a-z, leaving all
// other bytes untouched (the "ASCII lowercase" algorithm; Unicode case
// conversion would mangle characters like the Kelvin sign).
func toASCIILowercase(s string) string {
	var result []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			result = append(result, c+32)
		} else {
			result = append(result, c)
		}
	}
	return string(result)
}

// toASCIIUppercase converts ASCII letters a-z to uppercase A-Z.
func toASCIIUppercase(s string) string {
	var result []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			result = append(result, c-32)
		} else {
			result = append(result, c)
		}
	}
	return string(result)
}
