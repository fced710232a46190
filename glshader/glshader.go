// Package glshader generates the GLSL vertex and fragment shaders that draw
// [gledge.Mesh] primitives with analytic edge antialiasing.
package glshader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/soypat/gledge"
)

// Uniform names used by the generated shaders.
const (
	UniformMVP    = "MVP"
	UniformWidths = "uWidths"
	UniformImage  = "u_image"
)

// Config configures shader generation. The zero value is ready to use.
type Config struct {
	// Version is the GLSL version. Versions of 140 and above use in/out qualifiers,
	// lower versions use attribute/varying. The core profile is requested from 150
	// upward. Zero selects 410.
	Version int
	// Blur is the antialiasing transition band width. Zero selects [gledge.DefaultBlur].
	Blur float32
	// Color is the non-premultiplied RGBA fill color of antialiased variants.
	// If all components are zero the variant's default color is used.
	Color [4]float32
}

// Source holds generated shader source code. Strings are not null terminated.
type Source struct {
	Vertex   string
	Fragment string
}

// Default fill colors of antialiased variants.
var (
	BlobColor    = [4]float32{1, 0.8, 0.3, 1}
	CapsuleColor = [4]float32{0, 0.8, 1, 1}
)

// For generates the shader pair that draws meshes of variant v.
func For(v gledge.Variant, cfg Config) (Source, error) {
	if cfg.Version == 0 {
		cfg.Version = 410
	} else if cfg.Version < 110 {
		return Source{}, fmt.Errorf("unsupported GLSL version %d", cfg.Version)
	}
	if cfg.Blur < 0 || !finite(cfg.Blur) {
		return Source{}, fmt.Errorf("invalid blur %g", cfg.Blur)
	} else if cfg.Blur == 0 {
		cfg.Blur = gledge.DefaultBlur
	}
	d := newDialect(cfg.Version)
	var vert, frag bytes.Buffer
	switch v {
	case gledge.VariantBlob, gledge.VariantCapsule:
		color := cfg.Color
		if color == ([4]float32{}) {
			color = BlobColor
			if v == gledge.VariantCapsule {
				color = CapsuleColor
			}
		}
		if v == gledge.VariantBlob {
			d.writeVertex(&vert, blobVertexBody, "vec3", "float width")
			d.writeFragmentHeader(&frag, "float width")
		} else {
			d.writeVertex(&vert, capsuleVertexBody, "vec4", "vec2 widths")
			d.writeFragmentHeader(&frag, "vec2 widths")
		}
		_, err := WriteCoverageLib(&frag, cfg.Blur)
		if err != nil {
			return Source{}, err
		}
		coverage := "gledgeSingle(normal, width)"
		if v == gledge.VariantCapsule {
			coverage = "gledgeDouble(normal, widths)"
		}
		fmt.Fprintf(&frag, "void main() {\n\tfloat alpha = %s;\n\t%s = vec4(%s, %s, %s, %s * alpha);\n}\n",
			coverage, d.fragColor, glslFloat(color[0]), glslFloat(color[1]), glslFloat(color[2]), glslFloat(color[3]))

	case gledge.VariantTexture:
		d.writeVertex(&vert, blobVertexBody, "vec3", "float width")
		d.writeFragmentHeader(&frag, "float width")
		fmt.Fprintf(&frag, "uniform sampler2D %s;\n\nvoid main() {\n\t%s = %s(%s, normal);\n}\n",
			UniformImage, d.fragColor, d.texture, UniformImage)

	default:
		return Source{}, fmt.Errorf("no shader for variant %s", v)
	}
	return Source{Vertex: vert.String(), Fragment: frag.String()}, nil
}

// WriteCoverageLib writes the GLSL coverage functions to w:
//
//	float gledgeSingle(vec2 normal, float width)
//	float gledgeDouble(vec2 normal, vec2 widths)
//
// widths.s is the outer width and widths.t the inner width of a round line.
func WriteCoverageLib(w io.Writer, blur float32) (int, error) {
	if blur <= 0 || !finite(blur) {
		return 0, errors.New("blur must be positive and finite")
	}
	return fmt.Fprintf(w, coverageLib, glslFloat(blur))
}

const coverageLib = `const float gledgeBlur = %s;

float gledgeSingle(vec2 normal, float width) {
	float dist = length(normal) * width;
	return clamp((width - dist) / gledgeBlur, 0.0, 1.0);
}

float gledgeDouble(vec2 normal, vec2 widths) {
	float dist = length(normal) * widths.s;
	float fadeOut = (widths.s - dist) / gledgeBlur;
	float fadeIn = (dist - (widths.t - gledgeBlur)) / gledgeBlur;
	return clamp(min(fadeIn, fadeOut), 0.0, 1.0);
}

`

const blobVertexBody = `	gl_Position = MVP * vec4(vPos, 0.0, 1.0);
	normal = vShape.xy;
	width = vShape.z;
`

// The capsule is drawn from its centerline; geometry is inflated by the outer width so
// it contains the whole antialiasing ramp.
const capsuleVertexBody = `	widths = uWidths;
	normal = vShape.xy;
	vec2 epos = vPos + vShape.zw * uWidths.s;
	gl_Position = MVP * vec4(epos, 0.0, 1.0);
`

// dialect holds the keywords that differ between legacy and core GLSL.
type dialect struct {
	version   int
	attribute string // Vertex input qualifier.
	vout      string // Vertex output qualifier.
	fin       string // Fragment input qualifier.
	fragColor string
	texture   string
}

func newDialect(version int) dialect {
	if version < 140 {
		return dialect{
			version:   version,
			attribute: "attribute",
			vout:      "varying",
			fin:       "varying",
			fragColor: "gl_FragColor",
			texture:   "texture2D",
		}
	}
	return dialect{
		version:   version,
		attribute: "in",
		vout:      "out",
		fin:       "in",
		fragColor: "fragColor",
		texture:   "texture",
	}
}

func (d dialect) writeVersion(w io.Writer) {
	if d.version >= 150 {
		fmt.Fprintf(w, "#version %d core\n", d.version)
	} else {
		fmt.Fprintf(w, "#version %d\n", d.version)
	}
}

func (d dialect) writeVertex(w io.Writer, body, shapeType, widthDecl string) {
	d.writeVersion(w)
	fmt.Fprintf(w, "uniform mat4 %s;\n", UniformMVP)
	if strings.Contains(body, UniformWidths) {
		fmt.Fprintf(w, "uniform vec2 %s;\n", UniformWidths)
	}
	fmt.Fprintf(w, "%s vec2 %s;\n", d.attribute, gledge.AttribPos)
	fmt.Fprintf(w, "%s %s %s;\n", d.attribute, shapeType, gledge.AttribShape)
	fmt.Fprintf(w, "%s vec2 normal;\n", d.vout)
	fmt.Fprintf(w, "%s %s;\n\n", d.vout, widthDecl)
	fmt.Fprintf(w, "void main() {\n%s}\n", body)
}

func (d dialect) writeFragmentHeader(w io.Writer, widthDecl string) {
	d.writeVersion(w)
	fmt.Fprintf(w, "%s vec2 normal;\n", d.fin)
	fmt.Fprintf(w, "%s %s;\n", d.fin, widthDecl)
	if d.fragColor != "gl_FragColor" {
		fmt.Fprintf(w, "out vec4 %s;\n", d.fragColor)
	}
	w.Write([]byte{'\n'})
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// glslFloat formats f as a GLSL float literal, which requires a decimal point.
func glslFloat(f float32) string {
	s := strconv.FormatFloat(float64(f), 'f', -1, 32)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}
