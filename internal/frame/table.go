package frame

func init() {
	register(func() body { return &Text{} }, "TALB")

	register(func() body { return &MultiText{} },
		"TCOM", "TCON", "TCOP", "TDAT", "TENC", "TEXT", "TFLT", "TIME",
		"TIT1", "TIT2", "TIT3", "TKEY", "TLAN", "TMED", "TOAL", "TOFN",
		"TOLY", "TOPE", "TOWN", "TPE1", "TPE2", "TPE3", "TPE4", "TPUB",
		"TRDA", "TRSN", "TRSO", "TSRC", "TSSE",
		// ID3v2.4
		"TDEN", "TDOR", "TDRC", "TDRL", "TDTG", "TMOO", "TPRO", "TSOA",
		"TSOP", "TSOT", "TSST",
	)

	register(func() body { return &NumericText{} },
		"TBPM", "TDLY", "TLEN", "TORY", "TSIZ", "TYER")

	register(func() body { return &NumericPartText{} }, "TPOS", "TRCK")

	register(func() body { return &UserText{} }, "TXXX")

	register(func() body { return &URL{} },
		"WCOM", "WCOP", "WOAF", "WOAR", "WOAS", "WORS", "WPAY", "WPUB")

	register(func() body { return &UserURL{} }, "WXXX")

	register(func() body { return &People{} }, "IPLS", "TIPL", "TMCL")
	register(func() body { return &Binary{} }, "MCDI")
	register(func() body { return &Comment{} }, "COMM")
	register(func() body { return &Lyrics{} }, "USLT")
	register(func() body { return &TermsOfUse{} }, "USER")
	register(func() body { return &Picture{} }, "APIC")
	register(func() body { return &Owner{} }, "UFID", "PRIV")
	register(func() body { return &Popularimeter{} }, "POPM")
}
