// Package language enumerates the clang-format language contexts a style
// configuration can be dumped under.
package language

// Language is a clang-format language tag. The zero value, None, means no
// language context.
type Language int

const (
	None Language = iota
	CSharp
	Cpp
	Java
	JavaScript
	Json
	ObjC
	Proto
	TableGen
	TextProto
	Verilog
)

type info struct {
	name      string
	extension string
}

var languages = [...]info{
	None:       {"", ""},
	CSharp:     {"CSharp", ".cs"},
	Cpp:        {"Cpp", ".cpp"},
	Java:       {"Java", ".java"},
	JavaScript: {"JavaScript", ".js"},
	Json:       {"Json", ".json"},
	ObjC:       {"ObjC", ".m"},
	Proto:      {"Proto", ".proto"},
	TableGen:   {"TableGen", ".td"},
	TextProto:  {"TextProto", ".textpb"},
	Verilog:    {"Verilog", ".sv"},
}

var byName = func() map[string]Language {
	m := make(map[string]Language, len(languages))
	for i, l := range languages {
		if i != int(None) {
			m[l.name] = Language(i)
		}
	}
	return m
}()

// Parse maps a tag as written in a configuration's Language key to a
// Language. Unknown tags yield None.
func Parse(tag string) Language {
	return byName[tag]
}

// Lookup is Parse with an explicit found flag.
func Lookup(tag string) (Language, bool) {
	l, ok := byName[tag]
	return l, ok
}

// All returns every known language in declaration order, excluding None.
func All() []Language {
	out := make([]Language, 0, len(languages)-1)
	for i := range languages {
		if Language(i) != None {
			out = append(out, Language(i))
		}
	}
	return out
}

// IsSet reports whether l names an actual language.
func (l Language) IsSet() bool {
	return l > None && int(l) < len(languages)
}

// Name returns the tag used in the Language key, or "" for None.
func (l Language) Name() string {
	if !l.IsSet() {
		return ""
	}
	return languages[l].name
}

// FileExtension returns the file extension clang-format associates with l,
// including the leading dot.
func (l Language) FileExtension() string {
	if !l.IsSet() {
		return ""
	}
	return languages[l].extension
}

func (l Language) String() string {
	if !l.IsSet() {
		return "None"
	}
	return languages[l].name
}
