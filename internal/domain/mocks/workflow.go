// Package mocks provides testify mocks in the mockery layout.
package mocks

import (
	domain "github.com/mouse-blink/earlyexit/internal/domain"
	mock "github.com/stretchr/testify/mock"
)

// MockWorkflow is a mock implementation of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// Fix provides a mock function with given fields: args
func (_m *MockWorkflow) Fix(args domain.FixArgs) error {
	ret := _m.Called(args)

	if len(ret) == 0 {
		panic("no return value specified for Fix")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(domain.FixArgs) error); ok {
		r0 = rf(args)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Check provides a mock function with given fields: args
func (_m *MockWorkflow) Check(args domain.FixArgs) error {
	ret := _m.Called(args)

	if len(ret) == 0 {
		panic("no return value specified for Check")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(domain.FixArgs) error); ok {
		r0 = rf(args)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Diff provides a mock function with given fields: args
func (_m *MockWorkflow) Diff(args domain.FixArgs) error {
	ret := _m.Called(args)

	if len(ret) == 0 {
		panic("no return value specified for Diff")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(domain.FixArgs) error); ok {
		r0 = rf(args)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockWorkflow creates a new instance of MockWorkflow. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	mock := &MockWorkflow{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
