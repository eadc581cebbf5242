// Package mocks provides testify mocks for the backend contract.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/Stopfield/UCR/internal/backend"
)

// MockController is a testify mock implementing backend.Controller.
type MockController struct {
	mock.Mock
}

// NewMockController creates a MockController bound to t.
// Expectations registered with On are asserted when the test finishes.
func NewMockController(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockController {
	m := &MockController{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// SubscribeInput provides a mock function.
func (m *MockController) SubscribeInput(req backend.InputSubscriptionRequest) bool {
	args := m.Called(req)
	return args.Bool(0)
}

// UnsubscribeInput provides a mock function.
func (m *MockController) UnsubscribeInput(req backend.InputSubscriptionRequest) bool {
	args := m.Called(req)
	return args.Bool(0)
}

// SubscribeOutput provides a mock function.
func (m *MockController) SubscribeOutput(req backend.OutputSubscriptionRequest) bool {
	args := m.Called(req)
	return args.Bool(0)
}

// UnsubscribeOutput provides a mock function.
func (m *MockController) UnsubscribeOutput(req backend.OutputSubscriptionRequest) bool {
	args := m.Called(req)
	return args.Bool(0)
}

// SetOutputState provides a mock function.
func (m *MockController) SetOutputState(req backend.OutputSubscriptionRequest, binding backend.BindingDescriptor, value int) {
	m.Called(req, binding, value)
}

// GetInputList provides a mock function.
func (m *MockController) GetInputList() backend.ProviderList {
	args := m.Called()
	if list, ok := args.Get(0).(backend.ProviderList); ok {
		return list
	}
	return nil
}

// GetOutputList provides a mock function.
func (m *MockController) GetOutputList() backend.ProviderList {
	args := m.Called()
	if list, ok := args.Get(0).(backend.ProviderList); ok {
		return list
	}
	return nil
}
