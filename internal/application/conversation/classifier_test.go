package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{name: "exact affirmative", text: "네", want: IntentAffirm},
		{name: "exact affirmative trailing punct", text: "네!", want: IntentAffirm},
		{name: "negative overrides", text: "아니요, 다시 할게요", want: IntentReject},
		{name: "short reply single cue", text: "ㅇㅇ 진행할게요", want: IntentAffirm},
		{name: "empty", text: "", want: IntentAmbiguous},
		{name: "hesitation", text: "음...", want: IntentAmbiguous},
		{name: "revision request", text: "수정해주세요", want: IntentReject},
		{name: "casual affirmative", text: "넵 좋습니다", want: IntentAffirm},
		{name: "long reply needs two cues", text: "그 부분은 조금 고민이 되기는 하는데 일단 한번 볼게요", want: IntentAmbiguous},
		{name: "long reply with two cues", text: "네 좋아요 그대로 쭉 진행해주시면 될 것 같습니다", want: IntentAffirm},
		{name: "whitespace only", text: "   ", want: IntentAmbiguous},
		{name: "single rune", text: "ㅋ", want: IntentAmbiguous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text), "text=%q", tt.text)
		})
	}
}

func TestClassify_NegativePriority(t *testing.T) {
	// 肯定与否认线索同时出现时偏向重新确认
	assert.Equal(t, IntentReject, Classify("좋긴 한데 다시 써주세요"))
	assert.Equal(t, IntentReject, Classify("네라고 하고 싶지만 아니에요"))
}
