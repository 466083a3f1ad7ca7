// SPDX-License-Identifier: EPL-2.0

package softmix

import "errors"

var (
	ErrUnknownFormat = errors.New("no decoder registered for format")
)
