// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package standalone

import (
	"net/http"

	"github.com/go-chi/render"
)

// CommandHandler runs one of the idempotent simulation commands.
func CommandHandler(w http.ResponseWriter, r *http.Request, command func()) {
	command()
	render.JSON(w, r, map[string]string{"status": "ok"})
}
