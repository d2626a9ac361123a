// Package geo maps Spanish province names to approximate centroid
// coordinates for placing aggregate markers on a map.
package geo

import "github.com/twpayne/go-geom"

// centroids is keyed by normalized province name (see NormalizeKey) and
// stores {lat, lon}. Values are approximate province centroids.
var centroids = map[string][2]float64{
	"a coruna":                      {43.3623, -8.4115},
	"alava araba":                   {42.8464, -2.6715},
	"albacete":                      {38.9943, -1.8585},
	"alicante":                      {38.3452, -0.4810},
	"almeria":                       {36.8340, -2.4637},
	"asturias":                      {43.3619, -5.8494},
	"avila":                         {40.6565, -4.6818},
	"badajoz":                       {38.8794, -6.9706},
	"barcelona":                     {41.3851, 2.1734},
	"burgos":                        {42.3439, -3.6969},
	"caceres":                       {39.4753, -6.3723},
	"cadiz":                         {36.5164, -6.2994},
	"cantabria":                     {43.1828, -3.9878},
	"castellon castello":            {39.9864, -0.0513},
	"ceuta":                         {35.8894, -5.3198},
	"ciudad real":                   {38.9857, -3.9291},
	"cordoba":                       {37.8882, -4.7794},
	"cuenca":                        {40.0704, -2.1374},
	"girona":                        {41.9794, 2.8214},
	"granada":                       {37.1773, -3.5986},
	"guadalajara":                   {40.6332, -3.1669},
	"guipuzcoa gipuzkoa":            {43.3120, -1.9784},
	"huelva":                        {37.2614, -6.9447},
	"huesca":                        {42.1401, -0.4089},
	"islas baleares illes balears":  {39.6953, 3.0176},
	"jaen":                          {37.7796, -3.7849},
	"la rioja":                      {42.2871, -2.5396},
	"las palmas":                    {28.1235, -15.4363},
	"leon":                          {42.5987, -5.5671},
	"lleida":                        {41.6176, 0.6200},
	"lugo":                          {43.0125, -7.5559},
	"madrid":                        {40.4168, -3.7038},
	"malaga":                        {36.7213, -4.4214},
	"melilla":                       {35.2923, -2.9381},
	"murcia":                        {37.9834, -1.1299},
	"navarra nafarroa":              {42.6954, -1.6761},
	"ourense":                       {42.3358, -7.8639},
	"pais vasco frances iparralde":  {43.3569, -1.7650},
	"palencia":                      {42.0095, -4.5286},
	"pontevedra":                    {42.4299, -8.6444},
	"salamanca":                     {40.9701, -5.6635},
	"santa cruz de tenerife":        {28.2916, -16.6291},
	"segovia":                       {40.9429, -4.1088},
	"sevilla":                       {37.3886, -5.9823},
	"soria":                         {41.7636, -2.4649},
	"tarragona":                     {41.1189, 1.2453},
	"teruel":                        {40.3440, -1.1065},
	"toledo":                        {39.8628, -4.0273},
	"valencia":                      {39.4699, -0.3763},
	"valladolid":                    {41.6523, -4.7245},
	"vizcaya bizkaia":               {43.2630, -2.9350},
	"zamora":                        {41.5036, -5.7440},
	"zaragoza":                      {41.6488, -0.8891},
}

// Centroid returns the centroid point (X=lon, Y=lat) for a province name in
// any spelling. ok is false for provinces without an entry; callers drop
// those rows from map output rather than treating the miss as an error.
func Centroid(province string) (*geom.Point, bool) {
	c, ok := centroids[NormalizeKey(province)]
	if !ok {
		return nil, false
	}
	return geom.NewPointFlat(geom.XY, []float64{c[1], c[0]}), true
}
