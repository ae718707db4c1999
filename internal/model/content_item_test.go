// internal/model/content_item_test.go
package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestDecodeContentItemData(t *testing.T) {
	tests := []struct {
		name    string
		typ     ContentItemType
		raw     string
		want    ContentItemData
		wantErr bool
	}{
		{name: "TEXT", typ: ContentItemText, raw: `{"text":"血圧とは"}`, want: &TextData{Text: "血圧とは"}},
		{name: "IMAGE", typ: ContentItemImage, raw: `{"imageUrl":"https://example.com/a.png"}`, want: &ImageData{ImageURL: "https://example.com/a.png"}},
		{name: "SPEECH_BUBBLE", typ: ContentItemSpeechBubble, raw: `{"text":"こんにちは"}`, want: &SpeechBubbleData{Text: "こんにちは"}},
		{name: "DATE", typ: ContentItemDate, raw: `{"date":"2025-01-01"}`, want: &DateData{Date: "2025-01-01"}},
		{name: "LABEL_TEXT_FIELD", typ: ContentItemLabelTextField, raw: `{"label":"血圧","placeholder":"120/80"}`, want: &LabelTextFieldData{Label: "血圧", Placeholder: "120/80"}},
		{name: "CHECKBOX", typ: ContentItemCheckbox, raw: `{"text":"減塩した"}`, want: &CheckboxData{Text: "減塩した"}},
		{name: "QNA", typ: ContentItemQna, raw: `{"question":"今日の気分は?"}`, want: &QnaData{Question: "今日の気分は?"}},
		{name: "異常系: 未知のタイプ", typ: "VIDEO", raw: `{"url":"x"}`, wantErr: true},
		{name: "異常系: 他のタイプのフィールド", typ: ContentItemText, raw: `{"imageUrl":"https://example.com/a.png"}`, wantErr: true},
		{name: "異常系: JSON でない", typ: ContentItemQna, raw: `question`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeContentItemData(tt.typ, []byte(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.typ, got.ItemType())
		})
	}
}

func TestNewStepResponse(t *testing.T) {
	step := &Step{
		PageTitle: "測定の記録",
		SortOrder: 2,
		Items: []ContentItem{
			{Type: ContentItemDate, SortOrder: 1, Data: datatypes.JSON(`{"date":"2025-01-01"}`)},
			{Type: ContentItemLabelTextField, SortOrder: 2, Data: datatypes.JSON(`{"label":"今朝の血圧"}`)},
		},
	}

	resp, err := NewStepResponse(step)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Order)
	require.Len(t, resp.ContentItems, 2)

	body, err := json.Marshal(resp.ContentItems[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"00000000-0000-0000-0000-000000000000","stepId":"00000000-0000-0000-0000-000000000000","type":"LABEL_TEXT_FIELD","order":2,"data":{"label":"今朝の血圧","placeholder":""}}`, string(body))

	step.Items = append(step.Items, ContentItem{Type: "UNKNOWN", Data: datatypes.JSON(`{}`)})
	_, err = NewStepResponse(step)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUserLearningProgress_Pointer(t *testing.T) {
	var p UserLearningProgress
	assert.False(t, p.HasPointer())
	assert.False(t, p.IsCurrentStep(uuid.Nil))

	stepID := uuid.New()
	topicID, contentID := uuid.New(), uuid.New()
	p.CurrentTopicID, p.CurrentContentID, p.CurrentStepID = &topicID, &contentID, &stepID
	assert.True(t, p.HasPointer())
	assert.True(t, p.IsCurrentStep(stepID))
	assert.False(t, p.IsCurrentStep(uuid.New()))
}
