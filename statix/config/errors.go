// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

// ConfigError reports a problem with the user-supplied configuration
// (missing entry method, unknown analysis id, ...). Per spec.md §7,
// configuration errors are reported to the caller and are not recoverable.
type ConfigError struct {
	msg string
}

// NewConfigError builds a ConfigError with the given message.
func NewConfigError(msg string) *ConfigError {
	return &ConfigError{msg: msg}
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.msg
}

// InternalError reports a violation of an internal invariant (e.g. an
// unknown CallKind reaching call-graph construction, or a dispatch target
// that the contract forbids to be nil). Per spec.md §7, internal invariants
// fail fast and the analysis result in progress is discarded.
type InternalError struct {
	msg string
}

// NewInternalError builds an InternalError with the given message.
func NewInternalError(msg string) *InternalError {
	return &InternalError{msg: msg}
}

func (e *InternalError) Error() string {
	return "internal error: " + e.msg
}
