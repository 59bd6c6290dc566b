// Package card 内置的 Void Browser 项目卡片配方
package card

import (
	_ "embed"

	"github.com/420247jake/void-browser/pkg/htmlpatch"
)

var (
	//go:embed recipe.yaml
	recipeYAML []byte

	//go:embed void_browser.html
	fragment string
)

// Recipe 返回内置配方，片段来自 void_browser.html
func Recipe() (htmlpatch.Recipe, error) {
	r, err := htmlpatch.ParseRecipe(recipeYAML)
	if err != nil {
		return htmlpatch.Recipe{}, err
	}
	r.Fragment = fragment
	if err := r.Validate(); err != nil {
		return htmlpatch.Recipe{}, err
	}
	return r, nil
}
