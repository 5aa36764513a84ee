/*
* Copyright (c) 2023-present unTill Pro, Ltd.
 */

package export

const indentUnit = "    "

const graphHeader = `fontname = "Bitstream Vera Sans"
fontsize = 8
node [shape = record, style = filled, fillcolor = aliceblue]
edge [arrowtail = empty]`

const clusterPrefix = "cluster_"

// record label special characters
var labelEscapes = []string{
	`\`, `\\`,
	`"`, `\"`,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
	`<`, `\<`,
	`>`, `\>`,
}
