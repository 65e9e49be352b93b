package ir

import "acnode/internal/catalog"

// timing is one protocol family's frame parameters: pulse widths in
// microseconds, carrier frequency in Hz, code width in bits and the
// fixed preamble carried in the high bits of the code word.
type timing struct {
	headerMark  int
	headerSpace int
	oneMark     int
	oneSpace    int
	zeroMark    int
	zeroSpace   int
	ptrail      int
	gap         int
	frequency   int
	bits        int
	preamble    uint32
}

// timings holds the emitter's hardware support table. Catalog entries
// without a row here are skipped during detection; the catalog may list
// more variants than this emitter can drive.
var timings = map[catalog.Protocol]timing{
	"AIRTON":       {3500, 1700, 430, 1270, 430, 420, 430, 100000, 38000, 28, 0x0D10000},
	"AIRWELL":      {2950, 3900, 550, 1650, 550, 550, 550, 100000, 38000, 28, 0x2300000},
	"AMCOR":        {8200, 4200, 600, 1500, 600, 600, 600, 100000, 38000, 28, 0x1440000},
	"ARGO":         {6400, 3300, 400, 2200, 400, 900, 400, 100000, 38000, 28, 0x0AC0000},
	"BOSCH144":     {4366, 4415, 502, 1645, 502, 571, 502, 100000, 38000, 28, 0x5130000},
	"CARRIER_AC":   {8532, 4228, 628, 1320, 628, 532, 628, 100000, 38000, 28, 0x4D20000},
	"CARRIER_AC40": {8402, 4166, 547, 1540, 547, 497, 547, 100000, 38000, 28, 0x4D30000},
	"CARRIER_AC64": {8940, 4556, 503, 1736, 503, 615, 503, 100000, 38000, 28, 0x4D40000},
	"CLIMABUTLER":  {3700, 1650, 470, 1500, 470, 430, 470, 100000, 38000, 28, 0x31B0000},
	"COOLIX":       {4692, 4416, 552, 1656, 552, 552, 552, 100000, 38000, 28, 0xB2C0000},
	"COOLIX48":     {4692, 4416, 552, 1656, 552, 552, 552, 100000, 38000, 28, 0xB2D0000},
	"CORONA_AC":    {3500, 1680, 450, 1250, 450, 420, 450, 100000, 38000, 28, 0x28C0000},
	"DAIKIN":       {3650, 1623, 428, 1280, 428, 428, 428, 100000, 38000, 28, 0x1120000},
	"DAIKIN2":      {10024, 25180, 297, 1104, 297, 360, 297, 100000, 36700, 28, 0x1130000},
	"DAIKIN64":     {4920, 2230, 298, 1700, 298, 780, 298, 100000, 38000, 28, 0x1140000},
	"DAIKIN128":    {9800, 9800, 348, 954, 348, 382, 348, 100000, 38000, 28, 0x1150000},
	"DELONGHI_AC":  {8984, 4200, 572, 1558, 572, 510, 572, 100000, 38000, 28, 0xDE10000},
	"ECOCLIM":      {5940, 7066, 637, 1739, 637, 637, 637, 100000, 38000, 28, 0xEC10000},
	"ELECTRA_AC":   {9166, 4470, 646, 1647, 646, 547, 646, 100000, 38000, 28, 0xE1A0000},
	"FUJITSU_AC":   {3324, 1574, 448, 1182, 448, 390, 448, 100000, 38000, 28, 0xF110000},
	"GOODWEATHER":  {6820, 6820, 580, 1860, 580, 580, 580, 100000, 38000, 28, 0x6DB0000},
	"GORENJE":      {9000, 4500, 560, 1690, 560, 560, 560, 100000, 38000, 28, 0x60E0000},
	"GREE":         {9000, 4500, 620, 1600, 620, 540, 620, 100000, 38000, 28, 0x6EE0000},
	"HAIER_AC":     {3000, 3000, 520, 1650, 520, 650, 520, 100000, 38000, 28, 0xA110000},
	"HITACHI_AC":   {3300, 1700, 400, 1250, 400, 500, 400, 100000, 38000, 28, 0xC110000},
	"KELON":        {9000, 4600, 560, 1680, 560, 600, 560, 100000, 38000, 28, 0xE10000},
	"KELVINATOR":   {9010, 4505, 680, 1530, 680, 510, 680, 100000, 38000, 28, 0xE20000},
	"LG":           {8500, 4250, 560, 1600, 560, 560, 560, 100000, 38000, 28, 0x8800000},
	"MIDEA":        {4480, 4480, 560, 1680, 560, 560, 560, 100000, 38000, 28, 0xA100000},
	"MIRAGE":       {8360, 4248, 554, 1592, 554, 545, 554, 100000, 38000, 28, 0xA200000},
	"MITSUBISHI_AC": {3400, 1750, 450, 1300, 450, 420, 450, 100000, 38000, 28,
		0xB240000},
	"NEOCLIMA":     {6112, 7391, 537, 1651, 537, 571, 537, 100000, 38000, 28, 0x4E00000},
	"PANASONIC_AC": {3456, 1728, 432, 1296, 432, 432, 432, 100000, 36700, 28, 0x4020000},
	"RHOSS":        {3042, 4248, 648, 1545, 648, 457, 648, 100000, 38000, 28, 0x5500000},
	"SAMSUNG_AC":   {690, 17844, 586, 1432, 586, 436, 586, 100000, 38000, 28, 0x5A00000},
	"SANYO_AC":     {8500, 4200, 500, 1600, 500, 550, 500, 100000, 38000, 28, 0x5A10000},
	"SHARP_AC":     {3800, 1900, 470, 1400, 470, 500, 470, 100000, 38000, 28, 0x5AA0000},
	"TCL112AC":     {3000, 1650, 500, 1050, 500, 325, 500, 100000, 38000, 28, 0x7C10000},
	"TECHNIBEL_AC": {8836, 4380, 523, 1696, 523, 564, 523, 100000, 38000, 28, 0x7E10000},
	"TECO":         {9000, 4440, 620, 1650, 620, 580, 620, 100000, 38000, 28, 0x7E20000},
	"TEKNOPOINT":   {3614, 1610, 477, 1237, 477, 477, 477, 100000, 38000, 28, 0x7E30000},
	"TOSHIBA_AC":   {4400, 4300, 580, 1600, 580, 490, 580, 100000, 38000, 28, 0x7010000},
	"TRANSCOLD":    {5944, 7563, 555, 1526, 555, 500, 555, 100000, 38000, 28, 0x7C00000},
	"TROTEC":       {5952, 7364, 592, 1560, 592, 592, 592, 100000, 36000, 28, 0x7400000},
	"TRUMA":        {20200, 1000, 1200, 1440, 1200, 720, 1200, 100000, 38000, 28, 0x7410000},
	"VESTEL_AC":    {3110, 9066, 520, 1535, 520, 480, 520, 100000, 38000, 28, 0xE570000},
	"VOLTAS":       {1026, 2553, 1026, 2553, 554, 1019, 554, 100000, 38000, 28, 0x0170000},
	"WHIRLPOOL_AC": {8950, 4484, 597, 1649, 597, 533, 597, 100000, 38000, 28, 0x3B00000},
	"YORK":         {4887, 2267, 612, 1778, 612, 579, 612, 100000, 38000, 28, 0x40B0000},
}
