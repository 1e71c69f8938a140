package catalog

import "github.com/mesh-intelligence/unitto/pkg/types"

// Currency unit IDs. The base currency has a fixed factor of 1; the others
// are converted with injected rates.
const (
	CurrencyBase = "usd"
)

// builtInGroups defines the catalog contents. Base units: meter, kilogram,
// kelvin, liter, square meter, second, meter per second, bit, US dollar.
var builtInGroups = []builtInGroup{
	{
		group: types.GroupLength,
		units: []builtInUnit{
			{id: "millimeter", symbol: "mm", factor: "0.001"},
			{id: "centimeter", symbol: "cm", factor: "0.01"},
			{id: "decimeter", symbol: "dm", factor: "0.1"},
			{id: "meter", symbol: "m", factor: "1"},
			{id: "kilometer", symbol: "km", factor: "1000"},
			{id: "inch", symbol: "in", factor: "0.0254"},
			{id: "foot", symbol: "ft", factor: "0.3048"},
			{id: "yard", symbol: "yd", factor: "0.9144"},
			{id: "mile", symbol: "mi", factor: "1609.344"},
			{id: "nautical_mile", symbol: "nmi", factor: "1852"},
			{id: "light_year", symbol: "ly", factor: "9460730472580800"},
		},
	},
	{
		group: types.GroupMass,
		units: []builtInUnit{
			{id: "milligram", symbol: "mg", factor: "0.000001"},
			{id: "gram", symbol: "g", factor: "0.001"},
			{id: "kilogram", symbol: "kg", factor: "1"},
			{id: "metric_ton", symbol: "t", factor: "1000"},
			{id: "carat", symbol: "ct", factor: "0.0002"},
			{id: "ounce", symbol: "oz", factor: "0.028349523125"},
			{id: "pound", symbol: "lb", factor: "0.45359237"},
			{id: "stone", symbol: "st", factor: "6.35029318"},
		},
	},
	{
		group: types.GroupTemperature,
		units: []builtInUnit{
			{id: "kelvin", symbol: "K", factor: "1"},
			{id: "celsius", symbol: "°C", factor: "1", offset: "273.15"},
			{id: "fahrenheit", symbol: "°F", factor: "5/9", offset: "459.67"},
			{id: "rankine", symbol: "°R", factor: "5/9"},
		},
	},
	{
		group: types.GroupVolume,
		units: []builtInUnit{
			{id: "milliliter", symbol: "ml", factor: "0.001"},
			{id: "liter", symbol: "l", factor: "1"},
			{id: "cubic_meter", symbol: "m³", factor: "1000"},
			{id: "us_teaspoon", symbol: "tsp", factor: "0.00492892159375"},
			{id: "us_tablespoon", symbol: "tbsp", factor: "0.01478676478125"},
			{id: "us_fluid_ounce", symbol: "fl oz", factor: "0.0295735295625"},
			{id: "us_cup", symbol: "cup", factor: "0.2365882365"},
			{id: "us_pint", symbol: "pt", factor: "0.473176473"},
			{id: "us_quart", symbol: "qt", factor: "0.946352946"},
			{id: "us_gallon", symbol: "gal", factor: "3.785411784"},
			{id: "imperial_gallon", symbol: "imp gal", factor: "4.54609"},
		},
	},
	{
		group: types.GroupArea,
		units: []builtInUnit{
			{id: "square_millimeter", symbol: "mm²", factor: "0.000001"},
			{id: "square_centimeter", symbol: "cm²", factor: "0.0001"},
			{id: "square_meter", symbol: "m²", factor: "1"},
			{id: "hectare", symbol: "ha", factor: "10000"},
			{id: "square_kilometer", symbol: "km²", factor: "1000000"},
			{id: "square_inch", symbol: "in²", factor: "0.00064516"},
			{id: "square_foot", symbol: "ft²", factor: "0.09290304"},
			{id: "square_yard", symbol: "yd²", factor: "0.83612736"},
			{id: "acre", symbol: "ac", factor: "4046.8564224"},
			{id: "square_mile", symbol: "mi²", factor: "2589988.110336"},
		},
	},
	{
		group: types.GroupTime,
		units: []builtInUnit{
			{id: "millisecond", symbol: "ms", factor: "0.001"},
			{id: "second", symbol: "s", factor: "1"},
			{id: "minute", symbol: "min", factor: "60"},
			{id: "hour", symbol: "h", factor: "3600"},
			{id: "day", symbol: "d", factor: "86400"},
			{id: "week", symbol: "wk", factor: "604800"},
			{id: "year", symbol: "yr", factor: "31536000"},
		},
	},
	{
		group: types.GroupSpeed,
		units: []builtInUnit{
			{id: "meter_per_second", symbol: "m/s", factor: "1"},
			{id: "kilometer_per_hour", symbol: "km/h", factor: "5/18"},
			{id: "mile_per_hour", symbol: "mph", factor: "0.44704"},
			{id: "foot_per_second", symbol: "ft/s", factor: "0.3048"},
			{id: "knot", symbol: "kn", factor: "463/900"},
		},
	},
	{
		group: types.GroupData,
		units: []builtInUnit{
			{id: "bit", symbol: "b", factor: "1"},
			{id: "byte", symbol: "B", factor: "8"},
			{id: "kilobit", symbol: "kb", factor: "1000"},
			{id: "kilobyte", symbol: "kB", factor: "8000"},
			{id: "kibibyte", symbol: "KiB", factor: "8192"},
			{id: "megabyte", symbol: "MB", factor: "8000000"},
			{id: "mebibyte", symbol: "MiB", factor: "8388608"},
			{id: "gigabyte", symbol: "GB", factor: "8000000000"},
			{id: "gibibyte", symbol: "GiB", factor: "8589934592"},
			{id: "terabyte", symbol: "TB", factor: "8000000000000"},
		},
	},
	{
		group: types.GroupCurrency,
		units: []builtInUnit{
			{id: CurrencyBase, symbol: "$", factor: "1"},
			{id: "eur", symbol: "€"},
			{id: "gbp", symbol: "£"},
			{id: "jpy", symbol: "¥"},
			{id: "chf", symbol: "CHF"},
			{id: "cny", symbol: "CN¥"},
			{id: "inr", symbol: "₹"},
			{id: "cad", symbol: "CA$"},
			{id: "aud", symbol: "A$"},
		},
	},
}
