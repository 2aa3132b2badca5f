// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package memory

const (
	// Header opens the rendered memory block.
	Header = "# 🧠 Active Memory Context"
	// ToolsHeader opens the usage footer of the rendered memory block.
	ToolsHeader = "# 🛠️ Memory Tools"
)
