package mqttio

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stopfield/UCR/internal/backend"
)

func TestNewCodec(t *testing.T) {
	for _, name := range []string{"json", "cbor"} {
		t.Run(name, func(t *testing.T) {
			codec, err := NewCodec(name)
			require.NoError(t, err)
			assert.Equal(t, name, codec.Name())

			in := ControlRequest{
				Op:           OpSubscribeInput,
				Subscription: backend.SubscriptionDescriptor{SubscriberID: uuid.New(), ProfileID: uuid.New()},
				Binding:      &backend.BindingDescriptor{Type: backend.BindingTypePOV, Index: 1, SubIndex: 2},
			}
			data, err := codec.Marshal(in)
			require.NoError(t, err)

			var out ControlRequest
			require.NoError(t, codec.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestNewCodec_Unknown(t *testing.T) {
	_, err := NewCodec("msgpack")
	assert.ErrorIs(t, err, ErrUnknownCodec)
}

func TestCBORCodec_Deterministic(t *testing.T) {
	codec, err := NewCodec("cbor")
	require.NoError(t, err)

	v := OutputValue{Subscription: backend.SubscriptionDescriptor{SubscriberID: uuid.New()}, Value: 42}
	a, err := codec.Marshal(v)
	require.NoError(t, err)
	b, err := codec.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
