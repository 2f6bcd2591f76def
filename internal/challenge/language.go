package challenge

import "fmt"

// Language is a supported submission language.
type Language string

const (
	Python Language = "python"
	CPP    Language = "cpp"
	Java   Language = "java"
)

// Languages lists the supported languages; the first is the default.
var Languages = []Language{Python, CPP, Java}

// DefaultLanguage is selected when a session starts.
const DefaultLanguage = Python

// canonicalStubs are the fixed starter programs served for every
// challenge regardless of what a model suggests.
var canonicalStubs = map[Language]string{
	Python: "# Enter your python code below",
	CPP:    "#include<iostream>\nint main(){\n    return 0;\n}",
	Java:   "import java.util.*;\npublic class Main {\n    public static void main(String[] args) {\n        Scanner scanner = new Scanner(System.in);\n    }\n}",
}

// CanonicalStub returns the fixed starter program for lang, or "" for an
// unsupported language.
func CanonicalStub(lang Language) string {
	return canonicalStubs[lang]
}

// CanonicalBoilerplate returns a fresh map of every supported language to
// its canonical stub.
func CanonicalBoilerplate() map[Language]string {
	out := make(map[Language]string, len(canonicalStubs))
	for k, v := range canonicalStubs {
		out[k] = v
	}
	return out
}

// Label is the display name of the language.
func (l Language) Label() string {
	switch l {
	case Python:
		return "Python"
	case CPP:
		return "C++"
	case Java:
		return "Java"
	}
	return string(l)
}

// Next cycles through Languages.
func (l Language) Next() Language {
	for i, lang := range Languages {
		if lang == l {
			return Languages[(i+1)%len(Languages)]
		}
	}
	return DefaultLanguage
}

// ParseLanguage accepts a language id or a common alias.
func ParseLanguage(s string) (Language, error) {
	switch s {
	case "python", "py", "python3":
		return Python, nil
	case "cpp", "c++", "cc":
		return CPP, nil
	case "java":
		return Java, nil
	}
	return "", fmt.Errorf("unsupported language %q (want python, cpp or java)", s)
}
