package htmlpatch

import (
	"bytes"
	"regexp"

	"github.com/go-errors/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Recipe 一次插入操作所需的全部参数
type Recipe struct {
	// Path 目标文件路径
	Path string `yaml:"path" validate:"required"`
	// Fragment 待插入的片段，按字面插入
	Fragment string `yaml:"fragment" validate:"required"`
	// Pattern 锚点正则，第一个捕获组为需要保留的锚点文本
	Pattern string `yaml:"pattern" validate:"required"`
	// Marker 插入成功后文档中必须出现的文本
	Marker string `yaml:"marker" validate:"required"`
}

// ParseRecipe 从 YAML 解析配方，未知字段视为错误
func ParseRecipe(data []byte) (Recipe, error) {
	var r Recipe
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return Recipe{}, errors.WrapPrefix(err, "解析配方失败", 0)
	}
	return r, nil
}

// Validate 校验必填字段
func (r Recipe) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errors.WrapPrefix(err, "配方校验失败", 0)
	}
	return nil
}

// Compile 校验配方并编译锚点正则
func (r Recipe) Compile() (*regexp.Regexp, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return nil, errors.WrapPrefix(err, "锚点正则无效", 0)
	}
	return re, nil
}
