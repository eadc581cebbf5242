package device

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Stopfield/UCR/internal/backend"
)

func TestInputSubscriptionRequest(t *testing.T) {
	d := New("Stick", "DirectInput", "{1}", IOTypeInput)
	profile := uuid.New()
	d.SetParentProfile(profile)

	b := &DeviceBinding{ID: uuid.New(), KeyType: int(backend.BindingTypePOV), KeyValue: 2, KeySubValue: 3}
	req := d.InputSubscriptionRequest(b)

	assert.Equal(t, "DirectInput", req.Provider.ProviderName)
	assert.Equal(t, "{1}", req.Device.DeviceHandle)
	assert.Equal(t, d.ID, req.Subscription.SubscriberID)
	assert.Equal(t, profile, req.Subscription.ProfileID)
	assert.Equal(t, backend.BindingDescriptor{Type: backend.BindingTypePOV, Index: 2, SubIndex: 3}, req.Binding)
	assert.Equal(t, b.ID, req.BindingID)
	assert.Nil(t, req.Handler)
}

func TestOutputSubscriptionRequestWithoutProfile(t *testing.T) {
	d := New("Lights", "Serial", "COM3", IOTypeOutput)
	req := d.OutputSubscriptionRequest()

	assert.Equal(t, d.ID, req.Subscription.SubscriberID)
	assert.Equal(t, uuid.Nil, req.Subscription.ProfileID)
}
