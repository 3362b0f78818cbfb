//go:build ocr

package hwp

const ocrBuild = true
