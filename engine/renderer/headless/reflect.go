package headless

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spaghettifunk/anima-assets/engine/renderer/metadata"
)

var (
	mainRe      = regexp.MustCompile(`\bvoid\s+main\s*\(`)
	layoutRe    = regexp.MustCompile(`layout\s*\([^)]*\)`)
	lineCmtRe   = regexp.MustCompile(`//[^\n]*`)
	blockCmtRe  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	directiveRe = regexp.MustCompile(`(?m)^[ \t]*#[^\n]*`)
)

var ignoredQualifiers = map[string]bool{
	"lowp": true, "mediump": true, "highp": true,
	"flat": true, "smooth": true, "noperspective": true,
	"centroid": true, "invariant": true, "const": true,
}

type stageInfo struct {
	inputs   []metadata.ShaderParam
	uniforms []metadata.ShaderParam
}

// reflectStage scans the global declarations of one GLSL stage. It
// understands plain `attribute`/`in` and `uniform` declarations, which is all
// the shaders of this engine use; blocks and structs are skipped.
func reflectStage(stage metadata.ShaderStage, src []byte) (*stageInfo, error) {
	text := string(src)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("compile %s stage: empty source", stage)
	}
	text = blockCmtRe.ReplaceAllString(text, " ")
	text = lineCmtRe.ReplaceAllString(text, " ")
	if !mainRe.MatchString(text) {
		return nil, fmt.Errorf("compile %s stage: no main function", stage)
	}
	text = directiveRe.ReplaceAllString(text, " ")
	text = layoutRe.ReplaceAllString(text, " ")

	info := &stageInfo{}
	depth := 0
	var stmt strings.Builder
	for _, r := range text {
		switch r {
		case '{':
			depth++
			stmt.Reset()
		case '}':
			if depth > 0 {
				depth--
			}
			stmt.Reset()
		case ';':
			if depth == 0 {
				if err := info.declare(stage, stmt.String()); err != nil {
					return nil, err
				}
			}
			stmt.Reset()
		default:
			if depth == 0 {
				stmt.WriteRune(r)
			}
		}
	}
	return info, nil
}

func (si *stageInfo) declare(stage metadata.ShaderStage, stmt string) error {
	fields := strings.Fields(strings.ReplaceAll(stmt, ",", " , "))
	var qualifier string
	for len(fields) > 0 {
		f := fields[0]
		if ignoredQualifiers[f] {
			fields = fields[1:]
			continue
		}
		if f == "attribute" || f == "in" || f == "uniform" {
			qualifier = f
			fields = fields[1:]
			continue
		}
		break
	}
	if qualifier == "" || len(fields) < 2 {
		return nil
	}
	if qualifier == "attribute" && stage != metadata.ShaderStageVertex {
		return fmt.Errorf("compile %s stage: attribute declared outside the vertex stage", stage)
	}
	// Fragment inputs are varyings, not program attributes.
	if qualifier == "in" && stage != metadata.ShaderStageVertex {
		return nil
	}

	typ, err := metadata.ShaderParamTypeFromString(fields[0])
	if err != nil {
		return nil
	}
	for _, name := range fields[1:] {
		if strings.HasPrefix(name, "=") {
			break
		}
		if name == "," {
			continue
		}
		if i := strings.IndexAny(name, "[="); i >= 0 {
			name = name[:i]
		}
		p := metadata.ShaderParam{Name: name, Type: typ}
		if qualifier == "uniform" {
			si.uniforms = append(si.uniforms, p)
		} else {
			p.Location = uint16(len(si.inputs))
			si.inputs = append(si.inputs, p)
		}
	}
	return nil
}
