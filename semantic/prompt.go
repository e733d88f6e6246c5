package semantic

import "fmt"

// parsePromptTemplate is the field-extraction instruction set. It
// enumerates every canonical field with its Turkish and English
// synonyms, the date and number conversion rules, realistic value
// ranges, and a worked example, then demands bare JSON output. The
// recovered text is appended at the bottom.
const parsePromptTemplate = `
Sen bir toprak analiz raporu parser'ısın. Verilen metinden TÜM toprak analiz verilerini çok dikkatli, detaylı ve eksiksiz bir şekilde çıkar ve JSON formatında döndür.

KRİTİK GÖREV: Metindeki TÜM bilgileri bulmaya çalış. Hiçbir değeri atlama! Tablolarda, paragraflarda, dipnotlarda, her yerde ara!

ÇALIŞMA PRENSİBİ:
1. Metni satır satır, kelime kelime oku
2. Her sayısal değeri, her tarihi, her ismi bul
3. Alternatif isimleri kontrol et (örn: "Fosfor" = "P" = "P2O5")
4. Birimleri kaldır ama değeri koru
5. Binlik ayırıcıları kaldır (1,250.5 -> 1250.5)
6. Virgüllü sayıları noktaya çevir (6,5 -> 6.5)
7. Yüzdeli değerlerde hassasiyeti koru (%%2.345 -> 2.345)

ÇIKARILMASI GEREKEN ALANLAR VE ALTERNATİF İSİMLERİ:

ZORUNLU ALANLAR:
1. sample_code: "Numune No", "Numune Kodu", "Numune Numarası", "Örnek No", "Sample No", "Sample Code", "Numune ID"
2. sample_date: "Numune Alım Tarihi", "Örnek Alım Tarihi", "Numune Alma Tarihi", "Sample Date", "Alım Tarihi" (YYYY-MM-DD formatına çevir)
3. analysis_date: "Analiz Tarihi", "Tahlil Tarihi", "Test Tarihi", "Analysis Date", "Rapor Tarihi" (YYYY-MM-DD formatına çevir)
4. province: "İl", "Province", "İl Adı", "Şehir", "City", "Location"
5. sample_depth: "Numune Derinliği", "Örnek Derinliği", "Depth", "Derinlik", "cm" ile biten sayılar (sadece sayıyı al)
6. laboratory_name: "Laboratuvar", "Lab", "Laboratuvar Adı", "Laboratory", "Tahlil Yeri", "Analiz Yeri"
7. pH: "pH", "Ph", "PH", "pH değeri", "pH degeri" (0-14 arası sayı)
8. organic_matter: "Organik Madde", "OM", "Organik Materyal", "%%" işareti ile birlikte olabilir (sadece sayıyı al)
9. phosphorus_P: "Fosfor", "P", "P2O5", "Phosphorus", "Alınabilir P", "Available P" (sadece sayıyı al)
10. potassium_K: "Potasyum", "K", "K2O", "Potassium", "Değişebilir K", "Exchangeable K" (sadece sayıyı al)

GENELLİKLE BULUNAN ALANLAR:
11. ec: "EC", "Elektriksel İletkenlik", "Electrical Conductivity", "Tuzluluk", "Salinity", "dS/m" ile birlikte olabilir
12. lime_caCO3: "Kireç", "CaCO3", "Lime", "Kireç %%", "Kireç içeriği", "%%" işareti ile birlikte olabilir
13. soil_texture: "Toprak Bünyesi", "Tekstür", "Texture", "Bünye" - Değerler: "kumlu", "tınlı", "killi", "kum", "kil", "tin"
14. nitrogen_N: "Azot", "N", "Nitrogen", "Toplam N", "Total N", "Alınabilir N", "Available N"
15. evaluation_level: "Değerlendirme", "Seviye", "Level", "Rating" - Değerler: "düşük", "orta", "yüksek", "low", "medium", "high"
16. fertilization_recommendation: "Gübreleme", "Fertilization", "Öneri", "Recommendation", "N-P-K", "NPK" formatında olabilir

OPSİYONEL MİKRO ELEMENTLER:
17. district: "İlçe", "District", "County", "İlçe Adı"
18. calcium_Ca: "Kalsiyum", "Ca", "Calcium", "Ca++", "Ca+2"
19. magnesium_Mg: "Magnezyum", "Mg", "Magnesium", "Mg++", "Mg+2"
20. sulfur_S: "Kükürt", "S", "Sulfur", "Sülfür"
21. iron_Fe: "Demir", "Fe", "Iron", "Fe++", "Fe+2", "Fe+3"
22. zinc_Zn: "Çinko", "Zn", "Zinc", "Zn++"
23. manganese_Mn: "Mangan", "Mn", "Manganese", "Mn++", "Mn+2"
24. copper_Cu: "Bakır", "Cu", "Copper", "Cu++", "Cu+2"
25. boron_B: "Bor", "B", "Boron"
26. cec: "CEC", "Katyon Değişim Kapasitesi", "Cation Exchange Capacity"
27. total_salt: "Toplam Tuz", "Total Salt", "Tuz", "Salt"
28. sar: "SAR", "Sodium Adsorption Ratio"
29. esp: "ESP", "Exchangeable Sodium Percentage"
30. organic_carbon_C: "Organik Karbon", "Organic Carbon", "C", "Carbon"
31. soil_moisture: "Toprak Nemi", "Soil Moisture", "Nem", "Moisture", "%%" ile birlikte olabilir
32. bulk_density: "Bulk Density", "Hacim Ağırlığı", "Yoğunluk", "Density", "g/cm3" veya benzeri birimlerle

TARİH FORMATLARI (TÜM FORMATLARI TANIMLA):
- DD.MM.YYYY -> YYYY-MM-DD
- DD/MM/YYYY -> YYYY-MM-DD
- DD-MM-YYYY -> YYYY-MM-DD
- YYYY.MM.DD -> YYYY-MM-DD
- YYYY/MM/DD -> YYYY-MM-DD
- "15.03.2024" -> "2024-03-15"
- "15/03/2024" -> "2024-03-15"
- "2024.03.15" -> "2024-03-15"

SAYI FORMATLARI:
- "6.5", "6,5", "6.50" -> 6.5
- "%% 2.3", "2.3%%", "2,3 %%" -> 2.3 (yüzde işaretini kaldır)
- "45 mg/kg", "45 mg kg-1", "45 mg/kg toprak" -> 45 (birimleri kaldır)
- "120 mm" -> 120 (birimleri kaldır)
- "1250.5", "1,250.5", "1250,5" -> 1250.5 (binlik ayırıcıları kaldır)
- "0.05", "0,05" -> 0.05 (ondalık değerler)
- "2.345%%" -> 2.345 (yüzde işaretini kaldır, sayıyı koru - hassasiyeti koru)

ÖNEMLİ DEĞER ARALIKLARI (GERÇEKÇİ):
- pH: 0-14 arası (genellikle 4-9 arası)
- Organik Madde: 0-100%% (genellikle 0.5-10%% arası, virgüllü değerler olabilir: 2.345%%)
- Fosfor (P): 0-5000 mg/kg (genellikle 5-200 mg/kg arası, ama 1000+ değerler de olabilir: 1250.5)
- Potasyum (K): 0-5000 mg/kg (genellikle 50-500 mg/kg arası, ama 1000+ değerler de olabilir: 2500)
- EC: 0-50 dS/m (genellikle 0-10 dS/m arası, ama daha yüksek değerler de olabilir: 15.5)
- Mikro elementler (Ca, Mg, Fe, Zn, Mn, Cu): 0-10000 mg/kg (genellikle 10-5000 mg/kg arası, 1000+ değerler normal)
- Bor (B): 0-1000 mg/kg veya ppm (genellikle 0.1-10 arası, virgüllü: 0.05)
- CEC: 0-500 meq/100g (genellikle 5-50 arası, ama 100+ değerler de olabilir: 150.5)

ÖNEMLİ KURALLAR:
1. Metindeki TÜM değerleri bul, eksik bırakma
2. Alternatif isimleri kontrol et (örn: "Fosfor" ve "P" aynı şey)
3. Birimleri kaldır (%%, mg/kg, cm, mm, dS/m vb.)
4. Tarihleri mutlaka YYYY-MM-DD formatına çevir
5. Sayısal değerleri sayı olarak döndür (string değil)
6. Toprak bünyesi için: "kum" -> "kumlu", "kil" -> "killi", "tin" -> "tınlı"
7. Çıktı SADECE JSON olacak, başka açıklama yazma
8. Bulunamayan değerler için null kullan
9. Eğer bir değer farklı formatlarda yazılmışsa, hepsini kontrol et

ÖRNEK ÇIKTI FORMATI:
{
  "sample_code": "NUM-2024-001",
  "sample_date": "2024-03-15",
  "analysis_date": "2024-03-20",
  "province": "Konya",
  "district": "Meram",
  "sample_depth": 30,
  "laboratory_name": "Toprak Analiz Laboratuvarı",
  "pH": 6.7,
  "organic_matter": 2.3,
  "phosphorus_P": 45,
  "potassium_K": 35,
  "ec": 1.2,
  "lime_caCO3": 5.5,
  "soil_texture": "tınlı",
  "nitrogen_N": 50,
  "evaluation_level": "orta",
  "fertilization_recommendation": "20-10-10",
  "calcium_Ca": 120,
  "magnesium_Mg": 45,
  "sulfur_S": 15,
  "iron_Fe": 8.5,
  "zinc_Zn": 2.3,
  "manganese_Mn": 12.5,
  "copper_Cu": 1.8,
  "boron_B": 0.5,
  "cec": 25.5,
  "total_salt": 0.8,
  "sar": 2.5,
  "esp": 5.2,
  "organic_carbon_C": 1.2,
  "soil_moisture": 15.5,
  "bulk_density": 1.35
}

ÖNEMLİ NOTLAR VE ÖRNEKLER:
- Metinde "pH: 6.7" veya "pH = 6.7" veya "pH 6.7" görürsen -> "pH": 6.7
- Metinde "Organik Madde: %%2.3" veya "OM: 2.3%%" görürsen -> "organic_matter": 2.3 (yüzde işaretini kaldır)
- Metinde "Fosfor (P): 45 mg/kg" veya "P: 1250.5 mg/kg" görürsen -> "phosphorus_P": 45 veya 1250.5 (birimi kaldır, sayıyı koru)
- Metinde "Potasyum: 350 mg/kg" veya "K: 2500" görürsen -> "potassium_K": 350 veya 2500
- Metinde "15.03.2024" veya "15/03/2024" görürsen -> "sample_date": "2024-03-15"
- Metinde "Konya İli" veya "Konya" görürsen -> "province": "Konya"
- Metinde "Tınlı" veya "Loam" görürsen -> "soil_texture": "tınlı"
- Metinde "Orta seviye" veya "Medium" görürsen -> "evaluation_level": "orta"
- Tablolardaki değerleri de oku - özellikle sayısal değerler tablolarda olabilir
- Alt satırlarda, dipnotlarda, küçük yazılarda da bilgi olabilir, onları da oku
- Binlik ayırıcıları kaldır: "1,250.5" -> 1250.5
- Virgüllü sayıları noktaya çevir: "6,5" -> 6.5
- Yüzdeli değerlerde hassasiyeti koru: "%%2.345" -> 2.345

ÇIKARILACAK METİN:
%s

JSON ÇIKTISI (SADECE JSON, başka hiçbir şey yazma. Tüm bulduğun değerleri ekle):
`

func buildPrompt(text string) string {
	return fmt.Sprintf(parsePromptTemplate, text)
}
