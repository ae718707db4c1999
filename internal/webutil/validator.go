// internal/webutil/validator.go
package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/ja" // 日本語ロケール
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja" // 日本語翻訳
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"learningContentGroupId": "学習コンテンツグループID",
	"groupId":                "グループID",
	"stepId":                 "ステップID",
	"text":                   "テキスト",
	"imageUrl":               "画像URL",
	"date":                   "日付",
	"label":                  "ラベル",
	"placeholder":            "プレースホルダー",
	"question":               "質問",
	"name":                   "名前",
	"title":                  "タイトル",
	"pageTitle":              "ページタイトル",
	"order":                  "表示順",
}

func translateField(field string) string {
	if translated, ok := fieldNameTranslations[field]; ok {
		return translated
	}
	return field
}

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	// JSONタグからフィールド名を取得するように設定
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	japanese := ja.New()
	uni := ut.New(japanese, japanese)
	var found bool
	Trans, found = uni.GetTranslator("ja")
	if !found {
		log.Fatal("translator not found")
	}

	if err := ja_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	// registerTranslation はフィールド名を日本語に置き換えてメッセージを上書きする
	registerTranslation := func(tag string, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, translateField(fe.Field()), fe.Param())
			return t
		})
	}

	registerTranslation("required", "{0}は必須項目です。")
	registerTranslation("uuid", "{0}はUUID形式で入力してください。")
	registerTranslation("url", "{0}は有効なURL形式ではありません。")
	registerTranslation("datetime", "{0}は{1}形式で入力してください。")
	registerTranslation("min", "{0}は{1}以上で入力してください。")
	registerTranslation("max", "{0}は{1}文字以下で入力してください。")
}
