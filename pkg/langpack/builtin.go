package langpack

import "regexp"

func mustPack(language string, keywords []string, completions []Completion, patterns map[string]string) *Pack {
	compiled := make(map[string]*regexp.Regexp, len(patterns))
	for label, expr := range patterns {
		compiled[label] = regexp.MustCompile(expr)
	}
	p, err := NewPack(language, keywords, completions, compiled)
	if err != nil {
		panic(err)
	}
	return p
}

func builtinPacks() []*Pack {
	return []*Pack{
		mustPack("python",
			[]string{"def", "class", "if", "else", "elif", "for", "while", "try", "except", "import", "from", "return", "yield", "lambda", "with", "as"},
			[]Completion{
				{"def ", "function_name(parameters):\n    \"\"\"Docstring\"\"\"\n    pass"},
				{"class ", "ClassName:\n    \"\"\"Class docstring\"\"\"\n    def __init__(self):\n        pass"},
				{"if ", "condition:\n    pass"},
				{"for ", "item in iterable:\n    pass"},
				{"try:", "\n    pass\nexcept Exception as e:\n    pass"},
			},
			map[string]string{
				"function": `def\s+(\w+)\s*\(`,
				"class":    `class\s+(\w+)`,
				"import":   `(?:from\s+(\w+)\s+)?import\s+(\w+)`,
			}),
		mustPack("javascript",
			[]string{"function", "const", "let", "var", "if", "else", "for", "while", "try", "catch", "class", "extends", "import", "export", "async", "await"},
			[]Completion{
				{"function ", "functionName() {\n    \n}"},
				{"const ", "variableName = "},
				{"if (", "condition) {\n    \n}"},
				{"for (", "let i = 0; i < length; i++) {\n    \n}"},
				{"try {", "\n    \n} catch (error) {\n    console.error(error);\n}"},
			},
			map[string]string{
				"function": `function\s+(\w+)\s*\(`,
				"arrow":    `const\s+(\w+)\s*=\s*\(`,
				"class":    `class\s+(\w+)`,
			}),
		mustPack("typescript",
			[]string{"interface", "type", "enum", "namespace", "module", "declare", "abstract", "readonly", "private", "public", "protected"},
			[]Completion{
				{"interface ", "InterfaceName {\n    \n}"},
				{"type ", "TypeName = "},
				{"enum ", "EnumName {\n    \n}"},
				{"class ", "ClassName {\n    constructor() {\n        \n    }\n}"},
			},
			map[string]string{
				"interface": `interface\s+(\w+)`,
				"type":      `type\s+(\w+)`,
				"enum":      `enum\s+(\w+)`,
			}),
		mustPack("html",
			[]string{"div", "span", "p", "h1", "h2", "h3", "h4", "h5", "h6", "a", "img", "ul", "ol", "li", "table", "tr", "td", "th"},
			[]Completion{
				{"<div", " class=\"\">\n    \n</div>"},
				{"<p", " class=\"\">\n    \n</p>"},
				{"<h1", "></h1>"},
				{"<a", " href=\"\" target=\"_blank\"></a>"},
				{"<img", " src=\"\" alt=\"\" />"},
				{"<ul", ">\n    <li></li>\n</ul>"},
			},
			map[string]string{
				"tag":       `<(\w+)`,
				"attribute": `(\w+)=`,
			}),
		mustPack("css",
			[]string{"display", "position", "color", "background", "margin", "padding", "border", "font", "text", "width", "height"},
			[]Completion{
				{"display: ", "flex;"},
				{"position: ", "relative;"},
				{"background: ", "#ffffff;"},
				{"margin: ", "0;"},
				{"padding: ", "0;"},
				{"border: ", "1px solid #ccc;"},
				{"font-family: ", "Arial, sans-serif;"},
			},
			map[string]string{
				"selector": `\.(\w+)`,
				"property": `(\w+):`,
			}),
		mustPack("php",
			[]string{"function", "class", "if", "else", "elseif", "for", "foreach", "while", "try", "catch", "public", "private", "protected"},
			[]Completion{
				{"function ", "functionName() {\n    \n}"},
				{"class ", "ClassName {\n    \n}"},
				{"if (", "$condition) {\n    \n}"},
				{"foreach (", "$array as $item) {\n    \n}"},
				{"try {", "\n    \n} catch (Exception $e) {\n    \n}"},
			},
			map[string]string{
				"function": `function\s+(\w+)\s*\(`,
				"class":    `class\s+(\w+)`,
				"variable": `\$(\w+)`,
			}),
	}
}
