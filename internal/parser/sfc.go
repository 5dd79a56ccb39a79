package parser

import (
	"regexp"
)

// scriptBlockPattern finds every <script ...>...</script> block in a
// Vue single-file component. Vue SFCs are not valid HTML-in-general
// (templates can embed arbitrary component tags), so rather than pull
// in a full HTML grammar this looks only for the one tag sweepy cares
// about, the way a targeted scan would.
var scriptBlockPattern = regexp.MustCompile(`(?is)<script([^>]*)>(.*?)</script>`)
var attrPattern = regexp.MustCompile(`([a-zA-Z-]+)\s*=\s*"([^"]*)"|([a-zA-Z-]+)\s*=\s*'([^']*)'|\b(setup)\b`)

// ScriptBlock is one <script> block extracted from a Vue SFC.
type ScriptBlock struct {
	Lang  string // js, ts, jsx, tsx - defaults to "js"
	Setup bool
	Code  string
	// LineOffset is the 0-based line number of the block's first
	// character within the original file, for correct diagnostics.
	LineOffset int
}

// ExtractScriptBlocks returns every <script> block in a Vue SFC, in
// document order.
func ExtractScriptBlocks(source []byte) []ScriptBlock {
	var blocks []ScriptBlock
	matches := scriptBlockPattern.FindAllSubmatchIndex(source, -1)
	for _, m := range matches {
		attrsRaw := string(source[m[2]:m[3]])
		code := string(source[m[4]:m[5]])

		block := ScriptBlock{Lang: "js", Code: code, LineOffset: countLines(source[:m[4]])}
		for _, am := range attrPattern.FindAllStringSubmatch(attrsRaw, -1) {
			switch {
			case am[1] == "lang":
				block.Lang = am[2]
			case am[3] == "lang":
				block.Lang = am[4]
			case am[5] == "setup":
				block.Setup = true
			}
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// PreferredScriptBlock selects the block a Vue component's module
// analysis should use: <script setup> takes priority per spec, since
// setup's top-level bindings are the component's effective public
// surface; otherwise the first plain <script> block.
func PreferredScriptBlock(blocks []ScriptBlock) (ScriptBlock, bool) {
	for _, b := range blocks {
		if b.Setup {
			return b, true
		}
	}
	if len(blocks) > 0 {
		return blocks[0], true
	}
	return ScriptBlock{}, false
}

// ScriptExtension maps a <script lang="..."> value to the file
// extension ParseForLanguage should dispatch on.
func ScriptExtension(lang string) string {
	switch lang {
	case "ts":
		return ".ts"
	case "tsx":
		return ".tsx"
	case "jsx":
		return ".jsx"
	default:
		return ".js"
	}
}

func countLines(b []byte) int {
	n := 0
	for _, c := range b {
		if c == '\n' {
			n++
		}
	}
	return n
}
