package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMessage(t *testing.T) {
	tmpl := MustParseMessage("test", `<b>{{esc .Title}}</b> {{.Count}}`)

	msg, err := RenderMessage(tmpl, map[string]interface{}{"Title": `Тест <script> & "go"`, "Count": 2})
	require.NoError(t, err)
	assert.Equal(t, `<b>Тест &lt;script&gt; &amp; &#34;go&#34;</b> 2`, msg)

	_, err = RenderMessage(tmpl, map[string]interface{}{"Count": 2})
	assert.Error(t, err, "missing keys must fail")
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Анна", CleanString("  Анна \n"))
	assert.Equal(t, "anna@test.ru", CleanString(" Anna@Test.RU ", true))
}
