package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator *gst.ShaderTranslator
	initErr    error
	once       sync.Once
)

// GetTranslator returns the process-wide shader translator, creating it on
// first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	once.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
		if initErr != nil {
			initErr = fmt.Errorf("failed to create shader translator: %w", initErr)
		}
	})
	return translator, initErr
}

// Translated is a shader stage ready for the native compiler.
type Translated struct {
	Code string
	// Variables maps source names to the names the translator emitted.
	Variables map[string]gst.ShaderVariable
}

// Translate converts WebGL2 source of the given stage ("vertex" or
// "fragment") to desktop GLSL 4.10, or ESSL when isGLES is set.
func Translate(source, stage string, isGLES bool) (*Translated, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, err
	}
	format := gst.OutputFormatGLSL410
	if isGLES {
		format = gst.OutputFormatESSL
	}
	res, err := t.TranslateShader(source, stage, gst.ShaderSpecWebGL2, format)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}
	return &Translated{Code: res.Code, Variables: res.Variables}, nil
}
