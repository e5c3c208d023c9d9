package dialer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTelURI(t *testing.T) {
	testCases := []struct {
		phone  string
		expect string
	}{
		{phone: "+91 98450 12345", expect: "tel:+919845012345"},
		{phone: "080-2222-1111", expect: "tel:080-2222-1111"},
		{phone: "ext 42", expect: "tel:ext42"},
		{phone: "", expect: "tel:"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, TelURI(testCase.phone), testCase.phone)
	}
}

func TestURIOpener(t *testing.T) {
	var opened string
	d := &URIOpener{Open: func(_ context.Context, uri string) error {
		opened = uri
		return nil
	}}
	assert.NoError(t, d.Dial(context.Background(), "+1 555 0100"))
	assert.Equal(t, "tel:+15550100", opened)
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	ctx := context.Background()
	assert.NoError(t, r.Dial(ctx, "1"))
	assert.NoError(t, Func(r.Dial).Dial(ctx, "not a number"))
	assert.Equal(t, []string{"1", "not a number"}, r.Dialed())
}
