// Package opengl is an OpenGL 4.1 core backend for the widgets package.
// It batches rectangles and glyph quads through one shader and exposes a
// bitmap font rasterized from golang.org/x/image's basicfont face.
package opengl

import (
	"unicode/utf8"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lite-xl/widgets"
)

// Glyph atlas geometry: the printable ASCII range laid out on a 16x6
// grid of fixed-size cells.
const (
	glyphW    = 7
	glyphH    = 13
	atlasCols = 16
	atlasRows = 6
	atlasW    = atlasCols * glyphW
	atlasH    = atlasRows * glyphH
)

const vertexShaderSrc = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;

out vec2 TexCoord;
out vec4 Color;

uniform mat4 projection;

void main() {
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
    TexCoord = aTexCoord;
    Color = aColor;
}
` + "\x00"

const fragmentShaderSrc = `
#version 410 core
in vec2 TexCoord;
in vec4 Color;

out vec4 FragColor;

uniform sampler2D fontTexture;
uniform bool useTexture;

void main() {
    if (useTexture) {
        float alpha = texture(fontTexture, TexCoord).r;
        FragColor = vec4(Color.rgb, Color.a * alpha);
    } else {
        FragColor = Color;
    }
}
` + "\x00"

type vertex struct {
	Pos      [2]float32
	TexCoord [2]float32
	Color    [4]float32
}

// Font is a fixed-advance bitmap font backed by the atlas. Scale is an
// integer-ish multiplier over the 7x13 base cell.
type Font struct {
	Scale float32
}

// NewFont returns a font at the given scale. Scale 1 is 7x13 pixels per
// glyph.
func NewFont(scale float32) *Font {
	if scale <= 0 {
		scale = 1
	}
	return &Font{Scale: scale}
}

// LineHeight implements widgets.Font.
func (f *Font) LineHeight() float32 { return glyphH * f.Scale }

// TextWidth implements widgets.Font. The font is monospaced, so width is
// rune count times the scaled advance.
func (f *Font) TextWidth(text string) float32 {
	return float32(utf8.RuneCountInString(text)) * glyphW * f.Scale
}

type clipRect struct {
	x, y, w, h float32
}

// Renderer implements widgets.Renderer on top of OpenGL. It is not safe
// for concurrent use; all calls must come from the thread owning the GL
// context.
type Renderer struct {
	shader    uint32
	vao, vbo  uint32
	fontTex   uint32
	projLoc   int32
	texLoc    int32
	useTexLoc int32

	width, height int
	clips         []clipRect

	// cursorFn forwards cursor-shape requests to the windowing layer.
	cursorFn func(widgets.CursorShape)
}

// NewRenderer creates the GL resources. The context must be current.
func NewRenderer(width, height int) (*Renderer, error) {
	r := &Renderer{width: width, height: height}

	var err error
	r.shader, err = compileProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		return nil, err
	}

	r.projLoc = gl.GetUniformLocation(r.shader, gl.Str("projection\x00"))
	r.texLoc = gl.GetUniformLocation(r.shader, gl.Str("fontTexture\x00"))
	r.useTexLoc = gl.GetUniformLocation(r.shader, gl.Str("useTexture\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(unsafe.Sizeof(vertex{}))
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, unsafe.Offsetof(vertex{}.TexCoord))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, unsafe.Offsetof(vertex{}.Color))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	r.fontTex = createFontTexture()
	return r, nil
}

// SetCursorFunc installs the callback that applies cursor-shape changes
// on the window.
func (r *Renderer) SetCursorFunc(fn func(widgets.CursorShape)) { r.cursorFn = fn }

// Resize updates the projection dimensions.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Begin sets up GL state for a frame of widget drawing.
func (r *Renderer) Begin() {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(r.shader)
	proj := ortho(0, float32(r.width), float32(r.height), 0, -1, 1)
	gl.UniformMatrix4fv(r.projLoc, 1, false, &proj[0])
}

// End restores GL state after widget drawing.
func (r *Renderer) End() {
	gl.Disable(gl.SCISSOR_TEST)
	r.clips = r.clips[:0]
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
}

// WindowSize implements widgets.Renderer.
func (r *Renderer) WindowSize() (float32, float32) {
	return float32(r.width), float32(r.height)
}

// SetCursor implements widgets.Renderer.
func (r *Renderer) SetCursor(shape widgets.CursorShape) {
	if r.cursorFn != nil {
		r.cursorFn(shape)
	}
}

// DrawRect implements widgets.Renderer.
func (r *Renderer) DrawRect(x, y, w, h float32, color uint32) {
	if w <= 0 || h <= 0 {
		return
	}
	c := unpack(color)
	vertices := []vertex{
		{Pos: [2]float32{x, y}, Color: c},
		{Pos: [2]float32{x + w, y}, Color: c},
		{Pos: [2]float32{x + w, y + h}, Color: c},
		{Pos: [2]float32{x, y}, Color: c},
		{Pos: [2]float32{x + w, y + h}, Color: c},
		{Pos: [2]float32{x, y + h}, Color: c},
	}
	gl.Uniform1i(r.useTexLoc, 0)
	r.submit(vertices)
}

// DrawText implements widgets.Renderer. Runes outside the atlas render
// as '?'. Returns the advance width.
func (r *Renderer) DrawText(font widgets.Font, text string, x, y float32, color uint32) float32 {
	if text == "" {
		return 0
	}
	scale := float32(1)
	if bf, ok := font.(*Font); ok {
		scale = bf.Scale
	}
	cw := glyphW * scale
	ch := glyphH * scale
	c := unpack(color)

	vertices := make([]vertex, 0, len(text)*6)
	px := x
	for _, ru := range text {
		if ru < 32 || ru > 126 {
			ru = '?'
		}
		idx := int(ru - 32)
		col := float32(idx % atlasCols)
		row := float32(idx / atlasCols)
		u0 := col * glyphW / atlasW
		v0 := row * glyphH / atlasH
		u1 := (col + 1) * glyphW / atlasW
		v1 := (row + 1) * glyphH / atlasH

		vertices = append(vertices,
			vertex{Pos: [2]float32{px, y}, TexCoord: [2]float32{u0, v0}, Color: c},
			vertex{Pos: [2]float32{px + cw, y}, TexCoord: [2]float32{u1, v0}, Color: c},
			vertex{Pos: [2]float32{px + cw, y + ch}, TexCoord: [2]float32{u1, v1}, Color: c},
			vertex{Pos: [2]float32{px, y}, TexCoord: [2]float32{u0, v0}, Color: c},
			vertex{Pos: [2]float32{px + cw, y + ch}, TexCoord: [2]float32{u1, v1}, Color: c},
			vertex{Pos: [2]float32{px, y + ch}, TexCoord: [2]float32{u0, v1}, Color: c},
		)
		px += cw
	}

	gl.Uniform1i(r.useTexLoc, 1)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)
	gl.Uniform1i(r.texLoc, 0)
	r.submit(vertices)
	return px - x
}

// PushClip implements widgets.Renderer. Nested clips intersect.
func (r *Renderer) PushClip(x, y, w, h float32) {
	rect := clipRect{x: x, y: y, w: w, h: h}
	if n := len(r.clips); n > 0 {
		rect = intersectClip(r.clips[n-1], rect)
	}
	r.clips = append(r.clips, rect)
	r.applyClip()
}

// PopClip implements widgets.Renderer.
func (r *Renderer) PopClip() {
	if len(r.clips) == 0 {
		return
	}
	r.clips = r.clips[:len(r.clips)-1]
	r.applyClip()
}

func (r *Renderer) applyClip() {
	if len(r.clips) == 0 {
		gl.Disable(gl.SCISSOR_TEST)
		return
	}
	c := r.clips[len(r.clips)-1]
	gl.Enable(gl.SCISSOR_TEST)
	// GL scissor origin is bottom-left.
	gl.Scissor(int32(c.x), int32(float32(r.height)-c.y-c.h), int32(maxf(0, c.w)), int32(maxf(0, c.h)))
}

func (r *Renderer) submit(vertices []vertex) {
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(unsafe.Sizeof(vertex{})), gl.Ptr(vertices), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)))
	gl.BindVertexArray(0)
}

// Delete releases all GL resources.
func (r *Renderer) Delete() {
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.shader != 0 {
		gl.DeleteProgram(r.shader)
	}
}

func intersectClip(a, b clipRect) clipRect {
	x0 := maxf(a.x, b.x)
	y0 := maxf(a.y, b.y)
	x1 := minf(a.x+a.w, b.x+b.w)
	y1 := minf(a.y+a.h, b.y+b.h)
	return clipRect{x: x0, y: y0, w: maxf(0, x1-x0), h: maxf(0, y1-y0)}
}

func unpack(color uint32) [4]float32 {
	cr, cg, cb, ca := widgets.UnpackRGBA(color)
	return [4]float32{
		float32(cr) / 255,
		float32(cg) / 255,
		float32(cb) / 255,
		float32(ca) / 255,
	}
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// createFontTexture rasterizes the printable ASCII range of the 7x13
// basicfont face into a single-channel atlas texture.
func createFontTexture() uint32 {
	data := make([]byte, atlasW*atlasH)
	face := basicfont.Face7x13
	dot := fixed.Point26_6{X: 0, Y: fixed.I(face.Ascent)}

	for ru := rune(32); ru <= 126; ru++ {
		dr, mask, maskp, _, ok := face.Glyph(dot, ru)
		if !ok {
			continue
		}
		idx := int(ru - 32)
		cellX := (idx % atlasCols) * glyphW
		cellY := (idx / atlasCols) * glyphH
		for y := dr.Min.Y; y < dr.Max.Y; y++ {
			for x := dr.Min.X; x < dr.Max.X; x++ {
				px := cellX + x
				py := cellY + y
				if px < 0 || py < 0 || px >= atlasW || py >= atlasH {
					continue
				}
				_, _, _, a := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
				if a > 0 {
					data[py*atlasW+px] = uint8(a >> 8)
				}
			}
		}
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, atlasW, atlasH, 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(data))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func compileProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader := gl.CreateShader(gl.VERTEX_SHADER)
	csource, free := gl.Strs(vertexSource)
	gl.ShaderSource(vertexShader, 1, csource, nil)
	free()
	gl.CompileShader(vertexShader)

	var status int32
	gl.GetShaderiv(vertexShader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		msg := shaderLog(vertexShader, false)
		gl.DeleteShader(vertexShader)
		return 0, &shaderError{msg: "vertex shader: " + msg}
	}

	fragmentShader := gl.CreateShader(gl.FRAGMENT_SHADER)
	csource, free = gl.Strs(fragmentSource)
	gl.ShaderSource(fragmentShader, 1, csource, nil)
	free()
	gl.CompileShader(fragmentShader)

	gl.GetShaderiv(fragmentShader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		msg := shaderLog(fragmentShader, false)
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)
		return 0, &shaderError{msg: "fragment shader: " + msg}
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		msg := shaderLog(program, true)
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)
		gl.DeleteProgram(program)
		return 0, &shaderError{msg: "link: " + msg}
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)
	return program, nil
}

func shaderLog(obj uint32, program bool) string {
	var logLength int32
	if program {
		gl.GetProgramiv(obj, gl.INFO_LOG_LENGTH, &logLength)
	} else {
		gl.GetShaderiv(obj, gl.INFO_LOG_LENGTH, &logLength)
	}
	buf := make([]byte, logLength+1)
	if program {
		gl.GetProgramInfoLog(obj, logLength, nil, &buf[0])
	} else {
		gl.GetShaderInfoLog(obj, logLength, nil, &buf[0])
	}
	return string(buf)
}

type shaderError struct {
	msg string
}

func (e *shaderError) Error() string { return e.msg }

func ortho(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}
