// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package collection loads prompt collections from directories of
// YAML files.
//
// A collection is one directory; every .yml/.yaml file directly
// inside it contributes prompts. Each file declares at most one
// language and a prompts mapping:
//
//	lang: de            # optional, defaults to "default"
//	prompts:
//	  system_intro: |
//	    You are {{ agent_name }}, working on {{ task }}.
//	  forbidden_actions:
//	    - Do not run destructive commands.
//	    - Do not exfiltrate credentials.
//
// String values become templates ({{ name }} placeholders), sequence
// values become lists. The same prompt name in files with different
// lang values forms a multi-language prompt; parameter sets must
// match across languages.
//
// [Load] fails on the first problem; [Lint] walks the same directory
// and reports every problem it can find without stopping.
package collection
