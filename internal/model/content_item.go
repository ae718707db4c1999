// internal/model/content_item.go
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type ContentItemType string

const (
	ContentItemText           ContentItemType = "TEXT"
	ContentItemImage          ContentItemType = "IMAGE"
	ContentItemSpeechBubble   ContentItemType = "SPEECH_BUBBLE"
	ContentItemDate           ContentItemType = "DATE"
	ContentItemLabelTextField ContentItemType = "LABEL_TEXT_FIELD"
	ContentItemCheckbox       ContentItemType = "CHECKBOX"
	ContentItemQna            ContentItemType = "QNA"
)

// ContentItemData はタイプごとのペイロード
type ContentItemData interface {
	ItemType() ContentItemType
}

type TextData struct {
	Text string `json:"text" validate:"required"`
}

type ImageData struct {
	ImageURL string `json:"imageUrl" validate:"required,url"`
}

type SpeechBubbleData struct {
	Text string `json:"text" validate:"required"`
}

type DateData struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type LabelTextFieldData struct {
	Label       string `json:"label" validate:"required"`
	Placeholder string `json:"placeholder"`
}

type CheckboxData struct {
	Text string `json:"text" validate:"required"`
}

type QnaData struct {
	Question    string `json:"question" validate:"required"`
	Placeholder string `json:"placeholder"`
}

func (TextData) ItemType() ContentItemType           { return ContentItemText }
func (ImageData) ItemType() ContentItemType          { return ContentItemImage }
func (SpeechBubbleData) ItemType() ContentItemType   { return ContentItemSpeechBubble }
func (DateData) ItemType() ContentItemType           { return ContentItemDate }
func (LabelTextFieldData) ItemType() ContentItemType { return ContentItemLabelTextField }
func (CheckboxData) ItemType() ContentItemType       { return ContentItemCheckbox }
func (QnaData) ItemType() ContentItemType            { return ContentItemQna }

// newContentItemData はタイプに対応する空のペイロードを返す
func newContentItemData(t ContentItemType) (ContentItemData, error) {
	switch t {
	case ContentItemText:
		return &TextData{}, nil
	case ContentItemImage:
		return &ImageData{}, nil
	case ContentItemSpeechBubble:
		return &SpeechBubbleData{}, nil
	case ContentItemDate:
		return &DateData{}, nil
	case ContentItemLabelTextField:
		return &LabelTextFieldData{}, nil
	case ContentItemCheckbox:
		return &CheckboxData{}, nil
	case ContentItemQna:
		return &QnaData{}, nil
	default:
		return nil, fmt.Errorf("unknown content item type %q: %w", t, ErrInvalidInput)
	}
}

// DecodeContentItemData は type を判別子として raw をデコードします。
// 未知のタイプ・未知のフィールドは ErrInvalidInput。
func DecodeContentItemData(t ContentItemType, raw []byte) (ContentItemData, error) {
	data, err := newContentItemData(t)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(data); err != nil {
		return nil, fmt.Errorf("decode %s payload: %v: %w", t, err, ErrInvalidInput)
	}
	return data, nil
}

// Payload は保存済みの JSON をタイプ付きペイロードに変換します。
func (i *ContentItem) Payload() (ContentItemData, error) {
	return DecodeContentItemData(i.Type, i.Data)
}
