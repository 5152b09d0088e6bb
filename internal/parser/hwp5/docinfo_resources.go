package hwp5

import (
	"fmt"
	"strings"

	"github.com/roboco-io/hwpmodel/internal/ir"
)

// 테두리선 굵기 (mm)
var borderWidthsMM = [...]float64{
	0.1, 0.12, 0.15, 0.2, 0.25, 0.3, 0.4, 0.5,
	0.6, 0.7, 1.0, 1.5, 2.0, 3.0, 4.0, 5.0,
}

func borderWidthMM(v uint8) float64 {
	if int(v) < len(borderWidthsMM) {
		return borderWidthsMM[v]
	}
	return borderWidthsMM[len(borderWidthsMM)-1]
}

// 채우기 종류 비트
const (
	fillSolid    = 0x1
	fillImage    = 0x2
	fillGradient = 0x4
)

func decodeFaceName(t *DocInfoTables, c *byteCursor) {
	face := &ir.FaceName{}
	attr := c.u8()
	face.Name = c.wstring()

	if attr&0x80 != 0 {
		kind := "unknown"
		switch c.u8() {
		case 1:
			kind = "ttf"
		case 2:
			kind = "hft"
		}
		face.Substitute = &ir.FaceSubst{Kind: kind, Name: c.wstring()}
	}
	if attr&0x40 != 0 {
		var metrics [10]byte
		copy(metrics[:], c.take(10))
		face.Metrics = &metrics
	}
	if attr&0x20 != 0 {
		face.DefaultName = c.wstring()
	}

	t.faceNames = append(t.faceNames, face)
}

func readBorderLine(c *byteCursor) ir.BorderLine {
	kind := c.u8()
	width := c.u8()
	return ir.BorderLine{
		Line:    borderLineKind(kind),
		WidthMM: borderWidthMM(width),
		Color:   ir.ColorRef(c.u32()),
	}
}

func decodeBorderFill(t *DocInfoTables, c *byteCursor) {
	bf := &ir.BorderFill{}
	bf.Attributes = c.u16()
	bf.ThreeD = readFlag(uint32(bf.Attributes), 0)
	bf.Shadow = readFlag(uint32(bf.Attributes), 1)
	for i := range bf.Edges {
		bf.Edges[i] = readBorderLine(c)
	}
	bf.Diagonal = readBorderLine(c)
	bf.Fill = readFill(c)
	t.borderFills = append(t.borderFills, bf)
}

// readFill decodes the fill block. Only the first fill kind present in the
// bit set is kept, checked in the order solid, gradient, image.
func readFill(c *byteCursor) ir.Fill {
	fill := ir.Fill{Kind: ir.FillNone}
	if c.remaining() < 4 {
		return fill
	}
	kinds := c.u32()

	switch {
	case kinds&fillSolid != 0:
		fill.BackgroundColor = ir.ColorRef(c.u32())
		fill.PatternColor = ir.ColorRef(c.u32())
		fill.PatternType = c.i32()
		fill.Kind = ir.FillSolid
		if fill.PatternType >= 0 {
			fill.Kind = ir.FillPattern
		}
	case kinds&fillGradient != 0:
		g := &ir.Gradient{}
		g.Type = c.i16()
		g.Angle = c.i16()
		g.CenterX = c.i16()
		g.CenterY = c.i16()
		g.Spread = c.i16()
		count := int(c.i16())
		if count > 2 {
			for i := 0; i < count && !c.short; i++ {
				g.Positions = append(g.Positions, c.i32())
			}
		}
		for i := 0; i < count && !c.short; i++ {
			g.Colors = append(g.Colors, ir.ColorRef(c.u32()))
		}
		fill.Kind = ir.FillGradient
		fill.Gradient = g
	case kinds&fillImage != 0:
		img := &ir.ImageFill{}
		img.Mode = c.u8()
		img.Brightness = c.i8()
		img.Contrast = c.i8()
		img.Effect = c.u8()
		img.BinItemID = c.u16()
		fill.Kind = ir.FillImage
		fill.Image = img
	}
	return fill
}

var imageExtensions = map[string]bool{
	"bmp": true, "gif": true, "jpg": true, "jpeg": true, "png": true,
	"tif": true, "tiff": true, "wmf": true, "emf": true,
}

var (
	storageEnum = bitEnum[ir.StorageKind]{start: 0, end: 3, fallback: ir.StorageLink,
		values: map[uint32]ir.StorageKind{1: ir.StorageEmbedded, 2: ir.StorageStorage}}
	compressionEnum = bitEnum[string]{start: 4, end: 5, fallback: "default",
		values: map[uint32]string{1: "compress", 2: "none"}}
	binStatusEnum = bitEnum[string]{start: 8, end: 9, fallback: "none",
		values: map[uint32]string{1: "success", 2: "error", 3: "ignored"}}
)

func decodeBinData(t *DocInfoTables, c *byteCursor) {
	attr := uint32(c.u16())
	b := &ir.BinData{
		ID:          uint16(len(t.binData) + 1),
		StorageKind: storageEnum.decode(attr),
		Compression: compressionEnum.decode(attr),
		Status:      binStatusEnum.decode(attr),
	}

	switch b.StorageKind {
	case ir.StorageLink:
		b.AbsPath = c.wstring()
		b.RelPath = c.wstring()
	case ir.StorageEmbedded:
		b.BinID = c.u16()
		b.Extension = strings.ToLower(c.wstring())
		b.IsImage = imageExtensions[b.Extension]
		b.ContainerPath = fmt.Sprintf("%s/BIN%04X.%s", StreamBinData, b.BinID, b.Extension)
	case ir.StorageStorage:
		b.BinID = c.u16()
	}

	t.binData = append(t.binData, b)
}
