package backend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Stopfield/UCR/internal/backend"
	"github.com/Stopfield/UCR/internal/backend/mocks"
)

type recordedPoint struct {
	measurement string
	tags        map[string]string
	fields      map[string]interface{}
}

type fakePointWriter struct {
	points []recordedPoint
}

func (f *fakePointWriter) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	f.points = append(f.points, recordedPoint{measurement: measurement, tags: tags, fields: fields})
}

func outputRequest() backend.OutputSubscriptionRequest {
	return backend.OutputSubscriptionRequest{
		Provider: backend.ProviderDescriptor{ProviderName: "vjoy"},
		Device:   backend.DeviceDescriptor{DeviceHandle: "1"},
	}
}

func TestMetered_SetOutputStateRecordsPoint(t *testing.T) {
	next := mocks.NewMockController(t)
	points := &fakePointWriter{}
	m := backend.NewMetered(next, points)

	binding := backend.BindingDescriptor{Type: backend.BindingTypeAxis, Index: 2, SubIndex: 0}
	next.On("SetOutputState", outputRequest(), binding, 16384).Return().Once()

	m.SetOutputState(outputRequest(), binding, 16384)

	if assert.Len(t, points.points, 1) {
		p := points.points[0]
		assert.Equal(t, "ucr_output_write", p.measurement)
		assert.Equal(t, "vjoy", p.tags["provider"])
		assert.Equal(t, "1", p.tags["device"])
		assert.Equal(t, "2", p.tags["index"])
		assert.Equal(t, 16384, p.fields["value"])
	}
}

func TestMetered_PassesThroughResults(t *testing.T) {
	next := mocks.NewMockController(t)
	points := &fakePointWriter{}
	m := backend.NewMetered(next, points)

	next.On("SubscribeOutput", outputRequest()).Return(false).Once()
	next.On("SubscribeInput", mock.Anything).Return(true).Once()

	assert.False(t, m.SubscribeOutput(outputRequest()))
	assert.True(t, m.SubscribeInput(backend.InputSubscriptionRequest{}))

	if assert.Len(t, points.points, 2) {
		assert.Equal(t, "subscribe_output", points.points[0].tags["op"])
		assert.Equal(t, false, points.points[0].fields["success"])
		assert.Equal(t, "subscribe_input", points.points[1].tags["op"])
		assert.Equal(t, true, points.points[1].fields["success"])
	}
}

func TestMetered_NilWriterDisablesRecording(t *testing.T) {
	next := mocks.NewMockController(t)
	m := backend.NewMetered(next, nil)

	next.On("UnsubscribeOutput", outputRequest()).Return(true).Once()
	next.On("SetOutputState", outputRequest(), backend.BindingDescriptor{}, 1).Return().Once()

	assert.True(t, m.UnsubscribeOutput(outputRequest()))
	m.SetOutputState(outputRequest(), backend.BindingDescriptor{}, 1)
}

func TestProviderList_Lookup(t *testing.T) {
	list := backend.ProviderList{
		"sdl": {
			ProviderDescriptor: backend.ProviderDescriptor{ProviderName: "sdl"},
			Devices: map[string]backend.DeviceReport{
				"joy-0": {DeviceName: "Stick"},
			},
		},
	}

	dev, ok := list.Lookup("sdl", "joy-0")
	assert.True(t, ok)
	assert.Equal(t, "Stick", dev.DeviceName)

	_, ok = list.Lookup("sdl", "joy-1")
	assert.False(t, ok)

	_, ok = list.Lookup("xinput", "joy-0")
	assert.False(t, ok)
}
