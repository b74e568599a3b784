package command

import "equiptrack/models"

// prefixTable maps the first three characters of a Command serial number to
// its device category. Populated from the vendor's published serial ranges.
var prefixTable = map[string]models.Category{}

var cameraPrefixes = []string{
	"ALP", "EGW", "A3P", "QF6", "DFL", "KT7", "DAL", "4KL", "KDT", "TQL", "RK7", "6F7", "GJ7", "YC3", "CQQ", "TTR",
	"TAC", "LXD", "49K", "3PJ", "PD7", "DRH", "GAK", "AHM", "W9P", "MTF", "QJT", "6JN", "NMC", "HFJ", "KXR", "PJF",
	"9YK", "PEG", "4HA", "7JE", "E9W", "KL9", "37T", "H9K", "D7L", "DXE", "HWH", "PDG", "YKC", "KWF", "3TE", "EXP",
	"D7M", "CPH", "3CF", "9PA", "7GN", "73C", "FTW", "CAM", "FCX", "DGA", "AC7", "TEP", "RNT", "HKA", "CRJ", "RLP",
	"9CR", "Y9P", "N46", "QK4", "3EW", "LAQ", "JM4", "KEQ", "7J4", "DE7", "NH9", "KC7", "GFR", "HDE", "N9D", "4XN",
	"D4C", "G37", "GEX", "JEH", "TEH", "XPD", "6LH", "GTY", "KDY", "QN4", "CG9", "9DT", "CPE", "HTR", "WH3", "3NY",
	"YMG", "7GE", "6T4", "D7X", "P76", "EJD", "H6T", "CKK", "XYA", "LQW", "T4Q", "FXG", "RND", "JR3", "LR9", "RFD",
	"W9K", "HEF", "J97", "PMF", "FJH", "PK4",
}

func init() {
	register := func(prefixes []string, c models.Category) {
		for _, p := range prefixes {
			prefixTable[p] = c
		}
	}

	register(cameraPrefixes, models.CategoryCamera)
	register([]string{"R7M", "M7R", "MPH", "NEX", "DAM", "DXM"}, models.CategoryAccessController)
	register([]string{"6GA"}, models.CategoryIOBoard)
	register([]string{"6CC", "PJE", "NR6", "T7L", "NCG", "9JX", "JQ9", "CHQ"}, models.CategoryEnvSensor)
	register([]string{"CHA", "DDD", "CRY", "MKE", "LKE", "KEN", "YDA", "DKC", "KYL"}, models.CategoryIntercom)
	register([]string{"PR4", "LPT", "NAR"}, models.CategoryGateway)
	register([]string{"WEY", "A9G", "MYW", "7WP", "7CG", "EWL", "CFA", "CFC", "CFD"}, models.CategoryConnector)
	register([]string{"DRJ"}, models.CategoryViewingStation)
	register([]string{"DEK"}, models.CategoryDeskStation)
	register([]string{"ANN"}, models.CategorySpeaker)
	register([]string{"DQ6"}, models.CategoryAlarmHub)
	register([]string{"DQ4"}, models.CategoryAlarmPanel)
	register([]string{"KP4", "KP9", "KP7", "KP6"}, models.CategoryAlarmKeypad)
	register([]string{"DC3"}, models.CategoryDoorContact)
	register([]string{"DG3"}, models.CategoryGlassBreak)
	register([]string{"DM3"}, models.CategoryMotionSensor)
	register([]string{"DP3"}, models.CategoryPanicButton)
	register([]string{"DW3"}, models.CategoryWaterSensor)
	register([]string{"DR3"}, models.CategoryWirelessRelay)
	register([]string{"FDT"}, models.CategorySirenStrobe)
	register([]string{"XC4"}, models.CategoryBP52Panel)
	register([]string{"39Q"}, models.CategoryAlarmExpander)
}

// Classify returns the device category for a serial number based on its
// three-character prefix. Serials shorter than three characters, and serials
// with an unregistered prefix, classify as Unknown.
func Classify(serialNumber string) models.Category {
	if len(serialNumber) < 3 {
		return models.CategoryUnknown
	}
	if c, ok := prefixTable[serialNumber[:3]]; ok {
		return c
	}
	return models.CategoryUnknown
}
